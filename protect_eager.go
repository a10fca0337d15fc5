//go:build linux && amd64 && !lazy
// +build linux,amd64,!lazy

package main

import (
	"fmt"
	"os"
)

// finalizeProtections applies each segment's p_flags-derived protection
// immediately, the default build (§4.5 "eager"). Every mapping is already
// RWX from mapSegments; this is the one and only protection change most
// runs ever make.
func finalizeProtections(segs []*mappedSegment) error {
	for i, s := range segs {
		length := uintptr(s.hostEnd - s.hostStart)
		if err := rawMprotect(s.hostStart, length, s.finalProt); err != nil {
			return &ProtectError{SegmentIndex: i, Err: err}
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "protect: segment %d -> %+v\n", i, s.finalProt)
		}
	}
	return nil
}

// installFaultHandler is a no-op in the eager build: there is nothing left
// to fault on by the time Transfer runs.
func installFaultHandler(segs []*mappedSegment) error { return nil }
