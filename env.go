package main

import "github.com/xyproto/env/v2"

// verbose gates every diagnostic Fprintf in this loader. The teacher's own
// tools (vibe67) gated their -v output off a CLI flag, but this loader's
// command line belongs entirely to the program being loaded: everything
// after the image path is forwarded to that program untouched, so the
// loader cannot claim any flag of its own without risking a collision with
// an argument the loaded program expects. LOADER_VERBOSE moves the same
// toggle into the environment instead, read once at startup through
// xyproto/env/v2, the dependency the teacher's go.mod already carried.
var verbose = env.Bool("LOADER_VERBOSE")
