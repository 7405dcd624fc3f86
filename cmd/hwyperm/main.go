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

// Command hwyperm inspects the shuffle engine: the registered targets, the
// masks and moves a selector pattern compiles to, and the cross-target
// verification.
//
// Usage:
//
//	hwyperm targets
//	hwyperm mask -- 1 0 -1 3
//	hwyperm patterns -f patterns.yaml --format yaml
//	hwyperm verify --target avx2 --seed 7 --seeds 4
//
// Selectors after "--" may be negative. HWY_TARGET and HWY_NO_SIMD select
// the current target as for any program using the library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hwyperm",
		Short: "Inspect and verify the portable vector shuffle engine",
		Long: `hwyperm reports how selector patterns compile on every register width and
element size, lists the instruction-set targets, and checks that each target
produces the scalar reference bytes.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Print per-target detail")
	root.AddCommand(newTargetsCmd(), newMaskCmd(), newPatternsCmd(), newVerifyCmd())
	return root
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
