// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// detectTarget picks the widest x86 tier the CPU supports. The AVX-512
// target needs VBMI for its byte permutes.
func detectTarget() Target {
	switch {
	case cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VBMI:
		return avx512Target{}
	case cpu.X86.HasAVX2:
		return avx2Target{}
	case cpu.X86.HasSSSE3:
		return ssse3Target{}
	default:
		return scalarTarget{}
	}
}
