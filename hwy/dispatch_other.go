//go:build !amd64 && !arm64

package hwy

// Other architectures run the scalar target. HWY_TARGET can still select
// any emulated target for testing.
func detectTarget() Target {
	return scalarTarget{}
}
