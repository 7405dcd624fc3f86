package hwy

// Runs after every target's init() has registered it (files initialize in
// name order).
func init() {
	selectTarget(detectTarget())
}
