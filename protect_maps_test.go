//go:build linux && amd64
// +build linux,amd64

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
)

// mapsPermissionsFor returns the permission string (e.g. "rw-p") of the
// /proc/self/maps entry containing addr, so protection tests can assert
// against what the kernel actually enforces rather than just this
// process's own bookkeeping.
func mapsPermissionsFor(t *testing.T, addr uintptr) string {
	t.Helper()

	f, err := os.Open("/proc/self/maps")
	if err != nil {
		t.Fatalf("opening /proc/self/maps: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		bounds := strings.SplitN(fields[0], "-", 2)
		if len(bounds) != 2 {
			continue
		}
		var lo, hi uint64
		if _, err := fmt.Sscanf(bounds[0], "%x", &lo); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(bounds[1], "%x", &hi); err != nil {
			continue
		}
		if uint64(addr) >= lo && uint64(addr) < hi {
			return fields[1]
		}
	}
	t.Fatalf("no /proc/self/maps entry contains %#x", addr)
	return ""
}
