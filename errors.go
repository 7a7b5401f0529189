/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flatjson

import (
	"fmt"
	"strings"
)

// ErrorKind is the taxonomy of parse failures Parse, ParseInto and Count
// can report.
type ErrorKind uint8

const (
	// ErrOK indicates success; never appears on a returned *ParseError.
	ErrOK ErrorKind = iota
	// ErrInvalid is a syntax error at the current byte.
	ErrInvalid
	// ErrIncomplete means the source ended mid-token (truncated UTF-8,
	// unterminated string, half-written escape or keyword).
	ErrIncomplete
	// ErrExtraData means non-whitespace bytes remain after the top-level
	// value.
	ErrExtraData
	// ErrNoFreeTokens means the caller-provided token buffer was too
	// small (ParseInto only).
	ErrNoFreeTokens
	// ErrKeyLengthOverflow means an object member key exceeded the
	// configured key-length width.
	ErrKeyLengthOverflow
	// ErrValueLengthOverflow means a value's text exceeded the
	// configured value-length width.
	ErrValueLengthOverflow
	// ErrChildsOverflow means a container's member count exceeded the
	// configured children width.
	ErrChildsOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrOK:
		return "ok"
	case ErrInvalid:
		return "invalid"
	case ErrIncomplete:
		return "incomplete"
	case ErrExtraData:
		return "extra data"
	case ErrNoFreeTokens:
		return "no free tokens"
	case ErrKeyLengthOverflow:
		return "key length overflow"
	case ErrValueLengthOverflow:
		return "value length overflow"
	case ErrChildsOverflow:
		return "children count overflow"
	}
	return "unknown error"
}

// contextWindow is the number of source bytes captured around a failing
// byte for diagnostics.
const contextWindow = 16

// ParseError is the parser's error record: the offending byte offset, a
// window of surrounding source bytes, the position of the failure within
// that window, and the names of the reporting function and the function
// that called into it. Only the innermost reporter fills this in; callers
// further up the recursion never overwrite it.
type ParseError struct {
	Kind ErrorKind
	// Offset is the byte offset into the source where the error was
	// detected.
	Offset int
	// Context is up to contextWindow bytes of source surrounding Offset.
	Context []byte
	// ContextPos is the index of Offset within Context.
	ContextPos int
	// Func is the name of the parser function that raised the error.
	Func string
	// Caller is the name of the parser function that called Func.
	Caller string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "flatjson: ok"
	}
	return fmt.Sprintf("flatjson: %s at offset %d (in %s, called from %s)", e.Kind, e.Offset, e.Func, e.Caller)
}

// Diagnostic renders a multi-line, human-readable view of the error with
// a caret under the offending byte, in the spirit of the source library's
// fj_error_string-plus-context dumps.
func (e *ParseError) Diagnostic() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s at byte %d\n", e.Kind, e.Offset)
	fmt.Fprintf(&b, "  %s\n", sanitizeContext(e.Context))
	if e.ContextPos >= 0 {
		fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", e.ContextPos))
	}
	fmt.Fprintf(&b, "  (raised in %s, called from %s)", e.Func, e.Caller)
	return b.String()
}

// sanitizeContext replaces control bytes with '.' so the context line
// never corrupts a terminal.
func sanitizeContext(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c == 0x7f {
			out[i] = '.'
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// newParseError builds a ParseError with a context window captured from
// src around offset.
func newParseError(kind ErrorKind, src []byte, offset int, fn, caller string) *ParseError {
	start := offset - contextWindow/2
	if start < 0 {
		start = 0
	}
	end := start + contextWindow
	if end > len(src) {
		end = len(src)
		start = end - contextWindow
		if start < 0 {
			start = 0
		}
	}
	return &ParseError{
		Kind:       kind,
		Offset:     offset,
		Context:    append([]byte(nil), src[start:end]...),
		ContextPos: offset - start,
		Func:       fn,
		Caller:     caller,
	}
}
