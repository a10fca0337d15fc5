//go:build linux && amd64
// +build linux,amd64

package main

import (
	"fmt"
	"os"
	"unsafe"
)

// mappedSegment records where one PT_LOAD segment ended up in host memory,
// kept alive for the protection finalizer, the relocator's bounds checks,
// and (in the lazy build) the fault handler.
type mappedSegment struct {
	hdr       phdr64
	hostStart uintptr // page-aligned host start
	hostEnd   uintptr // page-aligned host end
	finalProt prot
}

func (m *mappedSegment) contains(hostAddr uintptr) bool {
	return hostAddr >= m.hostStart && hostAddr < m.hostEnd
}

// mapSegments maps every PT_LOAD segment at its planned address (§4.3). Each
// segment is mapped RWX first regardless of its final p_flags, so the
// relocator can always write into it and IRELATIVE resolvers inside the
// image can run; the protection finalizer applies p_flags afterward. BSS
// (the region from p_vaddr+p_filesz to p_vaddr+p_memsz) is zero-filled
// explicitly. Each segment's pages come from a fresh anonymous mapping and
// so already start zeroed by the kernel; the explicit fill keeps the
// zeroing from p_filesz forward stated in the code rather than left to how
// the pages were obtained (Open Question #1 — see DESIGN.md).
func mapSegments(plan *addressPlan, img *ImageBytes, segments []phdr64) ([]*mappedSegment, error) {
	raw := img.Bytes()
	out := make([]*mappedSegment, 0, len(segments))

	for i, seg := range segments {
		if seg.pMemsz == 0 {
			// §4.3 scopes the mapper to segments with p_memsz > 0 (matching
			// original_source/src/main.rs's .filter(|ph| ph.p_memsz > 0)): a
			// page-aligned zero-memsz PT_LOAD would otherwise reach rawMmap
			// with length 0, which mmap(2) rejects with EINVAL.
			continue
		}
		hostStart := plan.hostAddr(pageFloor(seg.pVaddr))
		hostEnd := plan.hostAddr(pageCeil(seg.pVaddr + seg.pMemsz))
		length := uintptr(hostEnd - hostStart)

		if _, err := rawMmap(hostStart, length, prot{Read: true, Write: true, Exec: true}, mmapFixedAnon); err != nil {
			return nil, &MapError{SegmentIndex: i, Err: err}
		}

		if seg.pFilesz > 0 {
			if seg.pOffset+seg.pFilesz > uint64(len(raw)) {
				return nil, &MapError{SegmentIndex: i, Err: fmt.Errorf("segment file range [%#x,%#x) exceeds image of length %d", seg.pOffset, seg.pOffset+seg.pFilesz, len(raw))}
			}
			dst := unsafe.Slice((*byte)(unsafe.Pointer(plan.hostAddr(seg.pVaddr))), seg.pFilesz)
			copy(dst, raw[seg.pOffset:seg.pOffset+seg.pFilesz])
		}

		if seg.pMemsz > seg.pFilesz {
			bssStart := plan.hostAddr(seg.pVaddr + seg.pFilesz)
			bssLen := seg.pMemsz - seg.pFilesz
			bss := unsafe.Slice((*byte)(unsafe.Pointer(bssStart)), bssLen)
			for j := range bss {
				bss[j] = 0
			}
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "map: segment %d [%#x,%#x) flags=%03b\n", i, hostStart, hostEnd, seg.pFlags)
		}

		out = append(out, &mappedSegment{
			hdr:       seg,
			hostStart: hostStart,
			hostEnd:   hostEnd,
			finalProt: flagsToProt(seg.pFlags),
		})
	}

	return out, nil
}

// findContaining returns the unique mapped segment containing hostAddr, or
// nil if none does. Used by the relocator's bounds check and the lazy
// fault handler's single-segment-upgrade rule (§5).
func findContaining(segments []*mappedSegment, hostAddr uintptr) *mappedSegment {
	for _, s := range segments {
		if s.contains(hostAddr) {
			return s
		}
	}
	return nil
}
