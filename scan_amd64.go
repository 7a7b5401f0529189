//go:build amd64
// +build amd64

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

import "github.com/klauspost/cpuid/v2"

// simdSupported mirrors the source library's SupportedCPU gate: on amd64
// hardware with wide SIMD registers, the 8-byte SWAR path reliably beats
// the scalar loop; elsewhere it's a wash or worse, so callers without
// AVX2 fall straight to the scalar path instead of paying for masking
// logic that no longer pays for itself.
var simdSupported = cpuid.CPU.Supports(cpuid.AVX2)
