package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/armemu/internal"
)

// Register is a register file index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0  = Register(0)  // r0
	REG_R1  = Register(1)  // r1
	REG_R2  = Register(2)  // r2
	REG_R3  = Register(3)  // r3
	REG_R4  = Register(4)  // r4
	REG_R5  = Register(5)  // r5
	REG_R6  = Register(6)  // r6
	REG_R7  = Register(7)  // r7
	REG_R8  = Register(8)  // r8
	REG_R9  = Register(9)  // r9
	REG_R10 = Register(10) // r10
	REG_R11 = Register(11) // r11
	REG_R12 = Register(12) // r12
	REG_SP  = Register(13) // sp
	REG_LR  = Register(14) // lr
	REG_PC  = Register(15) // pc
)

const (
	GENERAL_REGISTERS = 13 // r0-r12
)

// Registers iterates over r0-r12, then sp, lr and pc.
func Registers() iter.Seq[Register] {
	general := func(yield func(Register) bool) {
		for n := range GENERAL_REGISTERS {
			if !yield(Register(n)) {
				return
			}
		}
	}

	return internal.Concat(general, slices.Values([]Register{REG_SP, REG_LR, REG_PC}))
}

// Flag is a single bit of the program status word.
type Flag uint32

// Program status word flags, at their Cortex-M APSR bit positions.
const (
	FLAG_Q = Flag(1 << 27) // Saturation
	FLAG_V = Flag(1 << 28) // Overflow
	FLAG_C = Flag(1 << 29) // Carry
	FLAG_Z = Flag(1 << 30) // Zero
	FLAG_N = Flag(1 << 31) // Negative
)

// Status is the packed program status word.
type Status uint32

// Get returns the state of a single flag.
func (sr Status) Get(flag Flag) bool {
	return uint32(sr)&uint32(flag) != 0
}

// Set sets or clears a single flag.
func (sr *Status) Set(flag Flag, state bool) {
	if state {
		*sr |= Status(flag)
	} else {
		*sr &^= Status(flag)
	}
}

// String renders the flags as NZCVQ, upper case when set.
func (sr Status) String() string {
	s := strings.Builder{}

	for _, bit := range []struct {
		flag Flag
		name rune
	}{
		{FLAG_N, 'N'},
		{FLAG_Z, 'Z'},
		{FLAG_C, 'C'},
		{FLAG_V, 'V'},
		{FLAG_Q, 'Q'},
	} {
		if sr.Get(bit.flag) {
			s.WriteRune(bit.name)
		} else {
			s.WriteRune(bit.name - 'A' + 'a')
		}
	}

	return s.String()
}

// RegisterFile is the Cortex-M style register bank.
type RegisterFile struct {
	R   [GENERAL_REGISTERS]uint32 // r0-r12
	Sp  uint32                    // Stack pointer (r13).
	Lr  uint32                    // Link register (r14).
	Pc  uint32                    // Program counter (r15), an index into the program.
	Psr Status                    // Program status word.
}

// Reset clears all registers and flags.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
}

// Get returns the value of a register.
func (rf *RegisterFile) Get(reg Register) (value uint32) {
	switch reg {
	case REG_SP:
		value = rf.Sp
	case REG_LR:
		value = rf.Lr
	case REG_PC:
		value = rf.Pc
	default:
		value = rf.R[reg]
	}
	return
}

// Set writes a register. The program counter is only changed by execution
// flow, so writing it fails.
func (rf *RegisterFile) Set(reg Register, value uint32) (err error) {
	switch reg {
	case REG_SP:
		rf.Sp = value
	case REG_LR:
		rf.Lr = value
	case REG_PC:
		err = ErrRegisterReadOnly
	default:
		rf.R[reg] = value
	}
	return
}

// String returns the register file state as text.
func (rf *RegisterFile) String() (text string) {
	for reg := range Registers() {
		text += fmt.Sprintf("% 5s: 0x%08X\n", reg.String(), rf.Get(reg))
	}
	text += fmt.Sprintf("% 5s: %v\n", "psr", rf.Psr)

	return
}
