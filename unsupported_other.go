//go:build !(linux && amd64)
// +build !linux !amd64

package main

import (
	"fmt"
	"os"
)

// This loader's whole pipeline — raw mmap/mprotect, /proc/self/auxv, and the
// entry-transfer assembly shim — is x86_64 Linux only (Non-goals). Every
// other platform/arch combination gets this stub instead of a partial,
// silently-wrong build, the same way the teacher's hotreload_windows.go
// stubs out a feature it cannot support on that platform rather than
// half-implementing it.
func main() {
	fmt.Fprintln(os.Stderr, "loader: only linux/amd64 is supported")
	os.Exit(1)
}
