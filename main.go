//go:build linux && amd64
// +build linux,amd64

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// main is the whole pipeline driver (§2): Parse → Plan → Map → Relocate →
// Protect → StackBuild → Transfer. There is deliberately no flag parsing:
// everything after the image path belongs to the program being loaded, not
// to this loader (see env.go).
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "loader:", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return &UsageError{Msg: "loader <program> [args...]"}
	}

	path, err := resolveImagePath(os.Args[1])
	if err != nil {
		return &FileError{Path: os.Args[1], Err: err}
	}

	img, err := loadImage(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	elf, err := parseELF(img)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	loadable := elf.loadSegments()
	plan, err := planAddressSpace(loadable)
	if err != nil {
		return &PlanError{Err: err}
	}

	segs, err := mapSegments(plan, img, loadable)
	if err != nil {
		return err // already a *MapError
	}

	relas, err := elf.relaEntries()
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := applyRelocations(plan, segs, relas); err != nil {
		return err // already a *RelocError
	}

	if err := finalizeProtections(segs); err != nil {
		return err // already a *ProtectError
	}
	if err := installFaultHandler(segs); err != nil {
		return err // already a *HandlerError
	}

	argv := os.Args[1:]
	envp := os.Environ()

	arena := newCstrArena(estimateArenaSize(path, argv, envp))
	execfnPtr := arena.putString(path)

	hostAuxv, err := readHostAuxv()
	if err != nil {
		return fmt.Errorf("reading auxv: %w", err)
	}
	auxv := buildAuxv(hostAuxv, plan, elf.ehdr, uintptrOf(execfnPtr))

	stack, err := buildInitialStack(arena, argv, envp, auxv)
	if err != nil {
		return fmt.Errorf("building initial stack: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "transfer: entry=%#x sp=%#x %s=%#x (clobbers: %s)\n",
			plan.hostAddr(elf.ehdr.eEntry), stack.pointer(), sysVTerminationReg, terminationFnValue(),
			strings.Join(sysVCallerSaved, ","))
	}

	transferControl(plan.hostAddr(elf.ehdr.eEntry), stack.pointer(), terminationFnValue())
	panic("unreachable: transferControl returned")
}

// resolveImagePath canonicalizes path the way the Rust source's
// canonicalize does: an absolute path with symlinks resolved, since
// AT_EXECFN and the FileError diagnostics should name the real file, not
// whatever relative fragment the caller typed.
func resolveImagePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return real, nil
}
