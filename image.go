package main

import (
	"fmt"
	"os"
)

// ImageBytes is the immutable byte sequence backing the whole load (§3:
// "Image bytes"). It is read in once, frozen, and then only ever read from —
// by the parser, by the segment mapper's memcpy, and, in the lazy protection
// build, by the fault handler. Its lifetime must extend through the final
// jump.
//
// Adapted from the teacher's SafeBuffer (safe_buffer.go), which tracked a
// write-then-commit lifecycle for compiler output buffers; this is the read
// side of that same idea: Freeze replaces Commit, and after Freeze the only
// operation left is Bytes.
type ImageBytes struct {
	data   []byte
	path   string
	frozen bool
}

// loadImage reads path fully into memory and freezes the result. path must
// already be canonicalized by the caller (see resolveImagePath in main.go).
func loadImage(path string) (*ImageBytes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img := &ImageBytes{data: data, path: path}
	img.Freeze()
	return img, nil
}

// Freeze marks the buffer as immutable for the remainder of the process.
// Called once, immediately after the read completes.
func (b *ImageBytes) Freeze() {
	if verbose {
		fmt.Fprintf(os.Stderr, "image %s: frozen at %d bytes\n", b.path, len(b.data))
	}
	b.frozen = true
}

// Bytes returns the frozen backing array. Callers must not mutate it; every
// consumer in this loader only reads.
func (b *ImageBytes) Bytes() []byte {
	if !b.frozen {
		panic("ImageBytes: Bytes called before Freeze")
	}
	return b.data
}

// Path returns the canonicalized path the image was read from.
func (b *ImageBytes) Path() string { return b.path }
