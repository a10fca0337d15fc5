//go:build linux && amd64 && lazy
// +build linux,amd64,lazy

package main

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// lastSigno, lastSiginfo, and lastUcontext are written by
// sigsegvTrampoline (sigtramp_linux_amd64.s) immediately on entry, ahead of
// calling goSigsegvHandler. This loader is single-threaded and synchronous
// by construction (§5), so a single set of globals is sufficient; nothing
// else is running to race against a fault being serviced.
var (
	lastSigno    int64
	lastSiginfo  uintptr
	lastUcontext uintptr
)

// faultSegments is the process-wide table the fault handler consults. It is
// published once, before Transfer, and never mutated again — the
// happens-before §5 requires.
var faultSegments []*mappedSegment

// finalizeProtections leaves every segment at PROT_NONE in the lazy build:
// nothing is granted its final protection until the first access faults.
func finalizeProtections(segs []*mappedSegment) error {
	for i, s := range segs {
		length := uintptr(s.hostEnd - s.hostStart)
		if err := rawMprotect(s.hostStart, length, prot{}); err != nil {
			return &ProtectError{SegmentIndex: i, Err: err}
		}
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "protect: %d segments left PROT_NONE pending fault\n", len(segs))
	}
	return nil
}

// installFaultHandler publishes segs and installs sigsegvTrampoline as the
// process's SIGSEGV handler (§4.5 "lazy").
func installFaultHandler(segs []*mappedSegment) error {
	faultSegments = segs

	var sa unix.Sigaction
	sa.Handler = sigsegvTrampolineAddr()
	sa.Flags = unix.SA_SIGINFO | unix.SA_RESTORER
	sa.Restorer = sigreturnTrampolineAddr()

	if err := unix.Sigaction(unix.SIGSEGV, &sa, nil); err != nil {
		return &HandlerError{Err: fmt.Errorf("sigaction(SIGSEGV): %w", err)}
	}
	return nil
}

// goSigsegvHandler runs on the faulting thread's own stack, inside the
// signal handler, after sigsegvTrampoline stashes the kernel's three
// arguments into lastSigno/lastSiginfo/lastUcontext. It upgrades the unique
// mapped segment containing the faulting address to its final protection
// and returns; the kernel then retries the faulting instruction (§4.5,
// §5).
//
//go:nosplit
func goSigsegvHandler() {
	addr := uintptr(*(*uint64)(unsafe.Pointer(lastSiginfo + 16))) // si_addr, Linux x86_64 siginfo_t layout

	seg := findContaining(faultSegments, addr)
	if seg == nil {
		// Not one of ours: there is nothing sensible left to do inside a
		// signal handler. Restore the default disposition (SIG_DFL is 0)
		// and re-raise so the process dies the way it would have without
		// this handler.
		unix.Sigaction(unix.SIGSEGV, &unix.Sigaction{Handler: 0}, nil)
		unix.Kill(unix.Getpid(), unix.SIGSEGV)
		return
	}

	length := uintptr(seg.hostEnd - seg.hostStart)
	_ = rawMprotect(seg.hostStart, length, seg.finalProt)
}

func sigsegvTrampoline()
func sigreturnTrampoline()

// funcAddr extracts the code entry address behind a Go func value. A func
// value is itself a pointer to a struct whose first word is the code
// pointer; this is the standard (if unsafe) way to turn an assembly stub
// declared as a Go func into a raw address a syscall can install as a
// handler.
func funcAddr(f func()) uintptr {
	return **(**uintptr)(unsafe.Pointer(&f))
}

func sigsegvTrampolineAddr() uintptr   { return funcAddr(sigsegvTrampoline) }
func sigreturnTrampolineAddr() uintptr { return funcAddr(sigreturnTrampoline) }
