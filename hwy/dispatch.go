package hwy

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// DispatchLevel represents the instruction set tier a Target implements.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSSE3 indicates SSSE3 instructions (128-bit, pshufb).
	DispatchSSSE3

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 BW/VBMI instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSSE3:
		return "ssse3"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// registration is one entry of the target registry.
type registration struct {
	target   Target
	priority int
}

var (
	registryMu sync.Mutex
	registry   []registration
)

// register adds t to the registry. Targets register from init(); a higher
// priority wins when several are usable on the running CPU.
func register(t Target, priority int) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registration{target: t, priority: priority})
	sort.SliceStable(registry, func(i, j int) bool {
		return registry[i].priority > registry[j].priority
	})
}

// Targets returns every compiled target, highest priority first. All of them
// run on any CPU.
func Targets() []Target {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Target, len(registry))
	for i, r := range registry {
		out[i] = r.target
	}
	return out
}

// LookupTarget returns the registered target with the given name.
func LookupTarget(name string) (Target, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Targets() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// TargetPriority returns the registry priority of t, or -1 if it is not registered.
func TargetPriority(t Target) int {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, r := range registry {
		if r.target == t {
			return r.priority
		}
	}
	return -1
}

// current is the target behind the package-level operations.
// Set by init() in dispatch_*.go files.
var current Target = scalarTarget{}

// currentLevel is the dispatch level of current.
var currentLevel DispatchLevel

// currentWidth is the register width in bytes of current.
var currentWidth = 16

// currentName is the human-readable name of current.
var currentName = "scalar"

// detected is the widest tier the CPU supports.
var detected Target = scalarTarget{}

// CurrentTarget returns the target used by the package-level operations.
func CurrentTarget() Target {
	return current
}

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSSE3/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return currentName
}

// SetTarget makes t the target of the package-level operations and returns
// the previous one. It is meant for tests and benchmarks and must not race
// with other calls into the package.
func SetTarget(t Target) Target {
	prev := current
	current = t
	currentLevel = t.Level()
	currentWidth = t.RegisterBytes()
	currentName = t.Name()
	return prev
}

// DetectedTarget returns the widest instruction set tier the CPU supports,
// whether or not it is the current target.
func DetectedTarget() Target {
	return detected
}

// selectTarget records hw as the detected tier and picks the current target:
// hw when its instructions run natively, scalar otherwise. HWY_TARGET can
// still select any registered target, emulated or not, and HWY_NO_SIMD
// forces scalar.
func selectTarget(hw Target) {
	detected = hw
	t := Target(scalarTarget{})
	if !hw.Emulated() {
		t = hw
	}
	switch {
	case NoSimdEnv():
		t = scalarTarget{}
	case TargetEnv() != "":
		if forced, ok := LookupTarget(TargetEnv()); ok {
			t = forced
		}
	}
	SetTarget(t)
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the scalar target is used regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// TargetEnv returns the target name forced by HWY_TARGET, if any.
// Every target runs on every CPU, so forcing one never faults; unknown
// names are ignored.
func TargetEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("HWY_TARGET")))
}
