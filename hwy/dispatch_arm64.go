//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func detectTarget() Target {
	// ASIMD is part of the ARMv8-A base architecture; the check only guards
	// against unusual kernels that do not report it.
	if cpu.ARM64.HasASIMD {
		return neonTarget{}
	}
	return scalarTarget{}
}
