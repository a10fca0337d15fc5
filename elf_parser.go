package main

import (
	"fmt"
	"unsafe"
)

// elfImage is the parsed view over an ImageBytes buffer: a file header plus
// slices of program and section headers, all zero-copy references into the
// caller's backing array (§4.1). It never allocates; every slice here is a
// reinterpretation of bytes already owned by the ImageBytes it was parsed
// from, so the ImageBytes must outlive the elfImage.
type elfImage struct {
	bytes *ImageBytes
	ehdr  *ehdr64
	phdrs []phdr64
	shdrs []shdr64
}

// parseELF parses img according to §4.1. It checks the ELF magic, class,
// data encoding, machine and file type so that bad input yields a clear
// error (which main reports as a FileError): malformed input is a fatal
// condition for this loader, never a best-effort fallback.
func parseELF(img *ImageBytes) (*elfImage, error) {
	raw := img.Bytes()
	if len(raw) < elfHeaderSize {
		return nil, fmt.Errorf("image is %d bytes, shorter than an ELF64 header", len(raw))
	}

	ehdr := (*ehdr64)(unsafe.Pointer(&raw[0]))
	if ehdr.identMagic != ([4]byte{elfMagic0, elfMagic1, elfMagic2, elfMagic3}) {
		return nil, fmt.Errorf("missing ELF magic")
	}
	if ehdr.identClass != elfClass64 {
		return nil, fmt.Errorf("not a 64-bit ELF image (EI_CLASS=%d)", ehdr.identClass)
	}
	if ehdr.identData != elfData2LSB {
		return nil, fmt.Errorf("not a little-endian ELF image (EI_DATA=%d)", ehdr.identData)
	}
	if ehdr.eMachine != emX8664 {
		return nil, fmt.Errorf("unsupported machine type %d, only EM_X86_64 (%d) is supported", ehdr.eMachine, emX8664)
	}
	if ehdr.eType != etExec && ehdr.eType != etDyn {
		return nil, fmt.Errorf("unsupported ELF type %d", ehdr.eType)
	}

	phdrs, err := sliceAt[phdr64](raw, ehdr.ePhoff, uint64(ehdr.ePhnum), uint64(ehdr.ePhentsize), progHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("program headers: %w", err)
	}
	var shdrs []shdr64
	if ehdr.eShnum > 0 {
		shdrs, err = sliceAt[shdr64](raw, ehdr.eShoff, uint64(ehdr.eShnum), uint64(ehdr.eShentsize), sectHeaderSize)
		if err != nil {
			return nil, fmt.Errorf("section headers: %w", err)
		}
	}

	for i := range phdrs {
		if phdrs[i].pType == ptInterp {
			return nil, fmt.Errorf("PT_INTERP present: dynamically-linked images are not supported (Non-goals)")
		}
	}

	return &elfImage{bytes: img, ehdr: ehdr, phdrs: phdrs, shdrs: shdrs}, nil
}

// sliceAt reinterprets count entries of entsize bytes each, starting at
// off within raw, as a []T. entsize must equal wantsize: this loader only
// understands the fixed Elf64_* entry layouts and refuses anything else
// rather than silently misreading a nonstandard entry size.
func sliceAt[T any](raw []byte, off, count, entsize, wantsize uint64) ([]T, error) {
	if count == 0 {
		return nil, nil
	}
	if entsize != wantsize {
		return nil, fmt.Errorf("unexpected entry size %d, want %d", entsize, wantsize)
	}
	end := off + count*entsize
	if end < off || end > uint64(len(raw)) {
		return nil, fmt.Errorf("table at offset %#x, count %d, entsize %d overruns image of length %d", off, count, entsize, len(raw))
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[off])), count), nil
}

// loadSegments returns the PT_LOAD program headers in program-header order,
// the order the mapper and relocator must preserve (§4.3, §4.4).
func (e *elfImage) loadSegments() []phdr64 {
	var out []phdr64
	for _, ph := range e.phdrs {
		if ph.pType == ptLoad {
			out = append(out, ph)
		}
	}
	return out
}

// relaEntries returns every Elf64_Rela entry found in SHT_RELA sections, in
// the order they appear in each table and in section-header order across
// tables (§4.4 Ordering).
func (e *elfImage) relaEntries() ([]rela64, error) {
	raw := e.bytes.Bytes()
	var out []rela64
	for _, sh := range e.shdrs {
		if sh.shType != shtRela {
			continue
		}
		n := sh.shSize / sh.shEntsize
		entries, err := sliceAt[rela64](raw, sh.shOffset, n, sh.shEntsize, uint64(unsafe.Sizeof(rela64{})))
		if err != nil {
			return nil, fmt.Errorf("SHT_RELA section: %w", err)
		}
		out = append(out, entries...)
	}
	return out, nil
}
