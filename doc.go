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

// Package flatjson parses JSON into a flat, contiguous array of fixed-size
// tokens instead of a heap-linked tree.
//
// Tokens keep offset/length references into the original source buffer;
// the parser never copies, unescapes or decodes values. A Document owns
// the token array and the source bytes it references; a Navigator walks
// the array to find children by key or index, compare two documents, and
// reconstruct textual or binary JSON from it.
//
// ParseInto parses in a single pass into a caller-supplied token buffer.
// Parse, which does not know the token count in advance, runs a
// throw-away counting pass before allocating, with the same control flow
// (and therefore the same success/failure outcome) as the fill pass that
// follows it.
package flatjson
