//go:build linux && amd64 && !lazy
// +build linux,amd64,!lazy

package main

// terminationFnValue is zero in the eager build: a statically-linked image
// expects no dynamic-linker termination callback in rdx (Open Question #2).
func terminationFnValue() uintptr { return 0 }
