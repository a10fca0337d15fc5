//go:build linux && amd64
// +build linux,amd64

package main

import (
	"fmt"
	"os"
	"unsafe"
)

// applyRelocations applies every R_X86_64_RELATIVE and R_X86_64_IRELATIVE
// entry found across all SHT_RELA sections, in the order relaEntries
// returned them (§4.4 Ordering). Every other relocation type is skipped: a
// static, non-PIE-or-self-relocating image produced by a toolchain targeting
// this loader never emits anything else, and dynamic symbol resolution is
// explicitly out of scope (Non-goals).
//
// Unlike the Rust source, which writes every relocation's target regardless
// of whether it falls inside a mapped segment, this loader bounds-checks the
// target first and reports a RelocError instead of corrupting unrelated
// memory (§7 note on RelocError).
func applyRelocations(plan *addressPlan, segs []*mappedSegment, entries []rela64) error {
	for i, r := range entries {
		switch r.rType() {
		case rX8664Relative:
			if err := writeRelative(plan, segs, i, r); err != nil {
				return err
			}
		case rX8664IRelative:
			if err := writeIRelative(plan, segs, i, r); err != nil {
				return err
			}
		default:
			continue
		}
	}
	return nil
}

func writeRelative(plan *addressPlan, segs []*mappedSegment, idx int, r rela64) error {
	target := plan.hostAddr(r.rOffset)
	if findContaining(segs, target) == nil {
		return &RelocError{Index: idx, Offset: r.rOffset}
	}
	value := plan.base + uintptr(r.rAddend)
	writeUnalignedUintptr(target, value)
	if verbose {
		fmt.Fprintf(os.Stderr, "reloc[%d]: RELATIVE at %#x <- %#x\n", idx, target, value)
	}
	return nil
}

// writeIRelative invokes the resolver at base+addend with the System V
// AMD64 zero-argument calling convention and writes its return value to the
// target, matching the Rust source's ifunc dispatch (original_source/src/main.rs).
func writeIRelative(plan *addressPlan, segs []*mappedSegment, idx int, r rela64) error {
	target := plan.hostAddr(r.rOffset)
	if findContaining(segs, target) == nil {
		return &RelocError{Index: idx, Offset: r.rOffset}
	}
	resolver := plan.base + uintptr(r.rAddend)
	value := callResolver(resolver)
	writeUnalignedUintptr(target, value)
	if verbose {
		fmt.Fprintf(os.Stderr, "reloc[%d]: IRELATIVE resolver %#x -> %#x\n", idx, resolver, value)
	}
	return nil
}

// writeUnalignedUintptr stores value at addr without assuming 8-byte
// alignment: PT_LOAD segments carry no such guarantee at an arbitrary
// r_offset.
func writeUnalignedUintptr(addr uintptr, value uintptr) {
	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), 8)
	for i := 0; i < 8; i++ {
		dst[i] = byte(value >> (8 * i))
	}
}
