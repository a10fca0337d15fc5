//go:build linux && amd64
// +build linux,amd64

package main

import (
	"fmt"
	"os"
)

// addressPlan is the output of the Address-space Planner (§4.2): a single
// contiguous reservation sized to hold every PT_LOAD segment at its correct
// relative offset, plus the base B such that B+p_vaddr is the host address a
// segment must land at.
type addressPlan struct {
	base uintptr
	lo   uint64 // lowest p_vaddr, page-aligned down
	hi   uint64 // highest p_vaddr+p_memsz, page-aligned up
}

const pageSize = 4096

func pageFloor(v uint64) uint64 { return v &^ (pageSize - 1) }
func pageCeil(v uint64) uint64  { return pageFloor(v+pageSize-1) }

// planAddressSpace computes [lo, hi) over every PT_LOAD segment and reserves
// that many bytes as a single anonymous read/write mapping (§4.2) so later
// per-segment MAP_FIXED calls land inside memory the kernel has already
// promised this process, never inside memory something else could race into.
func planAddressSpace(segments []phdr64) (*addressPlan, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("image has no PT_LOAD segments")
	}

	lo := ^uint64(0)
	hi := uint64(0)
	for _, seg := range segments {
		segLo := pageFloor(seg.pVaddr)
		segHi := pageCeil(seg.pVaddr + seg.pMemsz)
		if segLo < lo {
			lo = segLo
		}
		if segHi > hi {
			hi = segHi
		}
	}
	if hi <= lo {
		return nil, fmt.Errorf("degenerate address range [%#x, %#x)", lo, hi)
	}

	size := hi - lo
	addr, err := rawMmap(0, uintptr(size), prot{Read: true, Write: true}, mmapAnonPrivate)
	if err != nil {
		return nil, fmt.Errorf("reserving %#x bytes: %w", size, err)
	}

	base := addr - uintptr(lo)
	if verbose {
		fmt.Fprintf(os.Stderr, "plan: [%#x, %#x) reserved at host %#x, base=%#x\n", lo, hi, addr, base)
	}
	return &addressPlan{base: base, lo: lo, hi: hi}, nil
}

// hostAddr translates an image-relative virtual address to the host address
// it was reserved at.
func (p *addressPlan) hostAddr(vaddr uint64) uintptr {
	return p.base + uintptr(vaddr)
}
