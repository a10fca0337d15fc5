package main

import (
	"encoding/binary"
)

// buildFixtureELF assembles a minimal, valid static ELF64 image in memory:
// one PT_LOAD segment covering the data region only (not the headers), plus
// an optional SHT_RELA section carrying opts.relas. It exists
// purely for these tests; no production code path constructs an ELF image,
// only parses one.
type fixtureOpts struct {
	memsz      uint64 // segment p_memsz; defaults to len(data) if zero
	relas      []rela64
	withInterp bool
}

func buildFixtureELF(data []byte, opts fixtureOpts) []byte {
	const (
		ehSize = elfHeaderSize
		phSize = progHeaderSize
		shSize = sectHeaderSize
	)

	segFilesz := uint64(len(data))
	segMemsz := opts.memsz
	if segMemsz == 0 {
		segMemsz = segFilesz
	}

	numPhdrs := 1
	if opts.withInterp {
		numPhdrs = 2
	}
	phoff := uint64(ehSize)
	dataOff := phoff + uint64(numPhdrs)*phSize

	relaOff := dataOff + segFilesz
	relaSize := uint64(len(opts.relas)) * uint64(binSizeofRela)
	shoff := relaOff + relaSize
	numShdrs := 0
	if len(opts.relas) > 0 {
		numShdrs = 1
	}

	total := shoff + uint64(numShdrs)*shSize
	buf := make([]byte, total)

	// Ehdr64
	buf[0], buf[1], buf[2], buf[3] = elfMagic0, elfMagic1, elfMagic2, elfMagic3
	buf[4] = elfClass64
	buf[5] = elfData2LSB
	binary.LittleEndian.PutUint16(buf[16:], etExec)
	binary.LittleEndian.PutUint16(buf[18:], emX8664)
	binary.LittleEndian.PutUint64(buf[24:], 0x400000) // e_entry = segment's p_vaddr
	binary.LittleEndian.PutUint64(buf[32:], phoff)
	binary.LittleEndian.PutUint64(buf[40:], shoff)
	binary.LittleEndian.PutUint16(buf[52:], ehSize)
	binary.LittleEndian.PutUint16(buf[54:], phSize)
	binary.LittleEndian.PutUint16(buf[56:], uint16(numPhdrs))
	binary.LittleEndian.PutUint16(buf[58:], shSize)
	binary.LittleEndian.PutUint16(buf[60:], uint16(numShdrs))

	// Phdr64 #0: PT_LOAD
	p := phoff
	binary.LittleEndian.PutUint32(buf[p:], ptLoad)
	binary.LittleEndian.PutUint32(buf[p+4:], pfR|pfW|pfX)
	binary.LittleEndian.PutUint64(buf[p+8:], dataOff)     // p_offset
	binary.LittleEndian.PutUint64(buf[p+16:], 0x400000)   // p_vaddr
	binary.LittleEndian.PutUint64(buf[p+24:], 0x400000)   // p_paddr
	binary.LittleEndian.PutUint64(buf[p+32:], segFilesz)  // p_filesz
	binary.LittleEndian.PutUint64(buf[p+40:], segMemsz)   // p_memsz
	binary.LittleEndian.PutUint64(buf[p+48:], 0x1000)     // p_align

	if opts.withInterp {
		p2 := phoff + phSize
		binary.LittleEndian.PutUint32(buf[p2:], ptInterp)
	}

	copy(buf[dataOff:], data)

	for i, r := range opts.relas {
		off := relaOff + uint64(i)*uint64(binSizeofRela)
		binary.LittleEndian.PutUint64(buf[off:], r.rOffset)
		binary.LittleEndian.PutUint64(buf[off+8:], r.rInfo)
		binary.LittleEndian.PutUint64(buf[off+16:], uint64(r.rAddend))
	}

	if numShdrs == 1 {
		s := shoff
		binary.LittleEndian.PutUint32(buf[s+4:], shtRela)
		binary.LittleEndian.PutUint64(buf[s+24:], relaOff)
		binary.LittleEndian.PutUint64(buf[s+32:], relaSize)
		binary.LittleEndian.PutUint64(buf[s+56:], uint64(binSizeofRela))
	}

	return buf
}

const binSizeofRela = 24 // sizeof(Elf64_Rela): r_offset, r_info, r_addend
