//go:build linux && amd64 && lazy
// +build linux,amd64,lazy

package main

// terminationFnValue returns the address of a loader-owned no-op trampoline
// in the lazy build: Open Question #2 leaves the role of this register
// pointer ambiguous, and since the lazy variant is already in the business
// of installing asm trampolines for the fault handler, this build preserves
// a pass-through-style pointer here rather than silently zeroing it,
// documented as a deliberate divergence from the eager build in DESIGN.md.
func terminationFnValue() uintptr {
	return funcAddr(noopTerminationTrampoline)
}

func noopTerminationTrampoline()
