//go:build linux
// +build linux

package main

import "testing"

func TestReadHostAuxvSelf(t *testing.T) {
	aux, err := readHostAuxv()
	if err != nil {
		t.Fatalf("readHostAuxv: %v", err)
	}
	if len(aux) == 0 {
		t.Fatal("expected at least one auxv entry from the running process")
	}
}

func TestBuildAuxvOverridesAndFiltering(t *testing.T) {
	host := map[uint64]uint64{
		6:     4096, // AT_PAGESZ, passed through
		3:     0xdeadbeef,
		0:     0, // never reached: readHostAuxv stops at AT_NULL and the scan starts at type 2
		1000:  1, // outside the 2..=47 scan range, must not appear
	}
	ehdr := &ehdr64{ePhoff: 0x40, ePhentsize: progHeaderSize, ePhnum: 3, eEntry: 0x401000}
	segs := []phdr64{{pType: ptLoad, pVaddr: 0x400000, pMemsz: 0x1000}}
	plan, err := planAddressSpace(segs)
	if err != nil {
		t.Fatalf("planAddressSpace: %v", err)
	}

	entries := buildAuxv(host, plan, ehdr, 0x7fffffff0000)

	byType := make(map[uint64]uint64, len(entries))
	for _, e := range entries {
		byType[e.Type] = e.Value
	}

	if v := byType[atPhdr]; v != uint64(plan.hostAddr(ehdr.ePhoff)) {
		t.Errorf("AT_PHDR = %#x, want %#x", v, plan.hostAddr(ehdr.ePhoff))
	}
	if v := byType[atPhent]; v != uint64(progHeaderSize) {
		t.Errorf("AT_PHENT = %d, want %d", v, progHeaderSize)
	}
	if v := byType[atPhnum]; v != 3 {
		t.Errorf("AT_PHNUM = %d, want 3", v)
	}
	if v := byType[atEntry]; v != uint64(plan.hostAddr(ehdr.eEntry)) {
		t.Errorf("AT_ENTRY = %#x, want %#x", v, plan.hostAddr(ehdr.eEntry))
	}
	if v := byType[atExecfn]; v != 0x7fffffff0000 {
		t.Errorf("AT_EXECFN = %#x, want 0x7fffffff0000", v)
	}
	if v, ok := byType[6]; !ok || v != 4096 {
		t.Errorf("expected host AT_PAGESZ=4096 to pass through, got %v ok=%v", v, ok)
	}
	if _, ok := byType[1000]; ok {
		t.Error("auxv type outside 2..=47 must not appear")
	}
}
