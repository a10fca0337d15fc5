package main

// System V AMD64 ABI facts this loader relies on. Trimmed from the teacher's
// calling_convention.go, which carried SystemVAMD64 alongside MicrosoftX64,
// AAPCS64, and a RISC-V convention for its multi-target code generator; this
// loader only ever targets one platform, so only that one survives.
const (
	// sysVStackAlignment is the alignment the ABI guarantees to a callee at
	// function entry: 16 bytes, measured after the return address has been
	// pushed. The kernel's own process-entry convention piggybacks on this:
	// rsp points at argc, and (rsp+8) is the pseudo "return address" slot
	// alignment checks against (§3 Invariants, §8 property 4).
	sysVStackAlignment = 16

	// sysVTerminationReg is the register a dynamic linker's start-up stub
	// conventionally receives a cleanup/termination function pointer in.
	// Static images ignore it; this loader zeroes it in the eager build and
	// documents the lazy build's divergence in transfer_linux_amd64.go
	// (Open Question #2).
	sysVTerminationReg = "rdx"
)

// sysVCallerSaved lists the registers a System V AMD64 callee may clobber
// without saving. Transfer (§4.7) relies on exactly this set being the only
// guarantee broken by the jump: every caller-saved register, plus every
// register not otherwise specified by the ABI's process-entry contract, is
// left in an unspecified state.
var sysVCallerSaved = []string{
	"rax", "rcx", "rdx", "rsi", "rdi", "r8", "r9", "r10", "r11",
}
