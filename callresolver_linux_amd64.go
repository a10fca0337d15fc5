//go:build linux && amd64
// +build linux,amd64

package main

// callResolver invokes the IFUNC resolver at addr with zero arguments under
// the System V AMD64 convention and returns its rax. Implemented in
// callresolver_linux_amd64.s: Go has no way to call through an arbitrary
// code pointer with the C calling convention without either cgo (no
// precedent anywhere in this codebase's lineage) or a hand-written
// trampoline, so this is the latter.
func callResolver(addr uintptr) uintptr
