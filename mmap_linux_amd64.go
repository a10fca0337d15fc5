//go:build linux && amd64
// +build linux,amd64

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// golang.org/x/sys/unix.Mmap always maps at an address the kernel chooses;
// it has no MAP_FIXED parameter. Both the planner (reserve [lo,hi)) and the
// mapper (place each PT_LOAD segment at an exact host address) need that
// control, so both go straight to the raw mmap(2) syscall through
// unix.Syscall6, the same style used for UFFDIO_* ioctls in
// _examples/other_examples/0c4a8d71_dsmmcken-dh-cli__src-internal-vm-uffd_linux.go.go.

// rawMmap wraps the mmap(2) syscall. addr is a hint (or a hard requirement
// when flags includes MAP_FIXED); the returned address is where the mapping
// actually landed.
func rawMmap(addr uintptr, length uintptr, p prot, flags int) (uintptr, error) {
	protBits := protBits(p)
	ret, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		length,
		uintptr(protBits),
		uintptr(flags),
		^uintptr(0), // fd = -1
		0,
	)
	if errno != 0 {
		return 0, fmt.Errorf("mmap(addr=%#x, len=%#x): %w", addr, length, errno)
	}
	return ret, nil
}

// There is deliberately no rawMunmap: every mapping this loader makes
// (the address-space reservation, every per-segment MAP_FIXED mapping)
// must live until the jump and beyond (§3 "Mapping handle set" — "release
// would unmap the target"), so there is no point in this pipeline that
// ever legitimately unmaps anything.

func rawMprotect(addr, length uintptr, p prot) error {
	if err := unix.Mprotect(unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(length)), protBits(p)); err != nil {
		return fmt.Errorf("mprotect(addr=%#x, len=%#x, prot=%+v): %w", addr, length, p, err)
	}
	return nil
}

func protBits(p prot) int {
	bits := unix.PROT_NONE
	if p.Read {
		bits |= unix.PROT_READ
	}
	if p.Write {
		bits |= unix.PROT_WRITE
	}
	if p.Exec {
		bits |= unix.PROT_EXEC
	}
	return bits
}

const (
	mmapAnonPrivate = unix.MAP_PRIVATE | unix.MAP_ANON
	mmapFixedAnon   = mmapAnonPrivate | unix.MAP_FIXED
)
