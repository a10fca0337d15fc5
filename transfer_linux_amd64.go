//go:build linux && amd64
// +build linux,amd64

package main

// transferControl sets rsp to sp, rdx to terminationFn, and jumps (not
// calls) to entry. Implemented in transfer_linux_amd64.s: no high-level Go
// construct can express a non-returning register-level handoff, so this is
// isolated to the smallest possible assembly shim, exactly the way §9
// ("Inline register handoff") calls for.
//
// terminationFn is zero in the eager build (a static image expects no
// dynamic-linker cleanup callback) and a loader-owned no-op trampoline
// address in the lazy build (Open Question #2 — see DESIGN.md); either way
// the choice is made by the caller in main.go, not here.
//
// This function never returns.
func transferControl(entry, sp, terminationFn uintptr)
