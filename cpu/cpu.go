package cpu

import (
	"errors"
	"log"
)

// Cpu is the simulation context for the core: its register file plus the
// program and label table that branches are resolved against.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	RegisterFile // Register bank and status word.

	Program *Program // Currently loaded program.
	Labels  *Labels  // Label table of the loaded program.
}

// NewCpu creates a new CPU with an empty program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Program: &Program{},
		Labels:  &Labels{},
	}

	return
}

// Reset clears the registers and flags, leaving the program in place.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.RegisterFile.Reset()
}

// Fetch returns the record at the program counter.
func (cpu *Cpu) Fetch() Record {
	return cpu.Program.At(int(cpu.Pc))
}

// Execute executes a single record against the register file.
//
// On success the program counter advances by one, or moves to the branch
// target of a taken blt. A failed mov or cmp, or a bad opcode, leaves the
// program counter unchanged. A taken blt whose target cannot be resolved
// falls through to the next record and reports the error.
func (cpu *Cpu) Execute(rec Record) (err error) {
	op := Classify(rec)

	if cpu.Verbose {
		log.Printf("%03x: %v %v", cpu.Pc, op, rec)
	}

	// Session commands and unknown mnemonics are not instructions.
	if !op.Architectural() {
		err = ErrMnemonic(rec.Mnemonic())
		return
	}

	next_pc := cpu.Pc + 1

	switch op {
	case OP_LABEL:
		// no-op
	case OP_MOV:
		var dst Register
		dst, err = ResolveRegister(rec, 1)
		if err != nil {
			err = errors.Join(ErrOpcodeMov, err)
			return
		}
		var value uint32
		value, err = cpu.source(rec, 2)
		if err != nil {
			err = errors.Join(ErrOpcodeMov, err)
			return
		}
		err = cpu.Set(dst, value)
		if err != nil {
			err = errors.Join(ErrOpcodeMov, &ErrOperand{Index: 1, Token: rec.Tokens[1], Err: err})
			return
		}
	case OP_CMP:
		var ra Register
		ra, err = ResolveRegister(rec, 1)
		if err != nil {
			err = errors.Join(ErrOpcodeCmp, err)
			return
		}
		var b uint32
		b, err = cpu.source(rec, 2)
		if err != nil {
			err = errors.Join(ErrOpcodeCmp, err)
			return
		}
		cpu.compare(cpu.Get(ra), b)
	case OP_BLT:
		if cpu.Psr.Get(FLAG_N) && !cpu.Psr.Get(FLAG_Z) {
			var target uint32
			target, err = cpu.target(rec, 1)
			if err != nil {
				err = errors.Join(ErrOpcodeBlt, err)
			} else {
				next_pc = target
			}
		}
	}

	cpu.Pc = next_pc

	return
}

// source gets the value of a source operand: a register, else an immediate.
func (cpu *Cpu) source(rec Record, n int) (value uint32, err error) {
	op, err := ResolveOperand(rec, n)
	if err != nil {
		return
	}

	switch op.Kind {
	case OPERAND_REGISTER:
		value = cpu.Get(op.Register)
	case OPERAND_IMMEDIATE:
		value = op.Value
	}

	return
}

// target gets the program index a branch operand refers to. The index must
// lie within the loaded program, or be its end.
func (cpu *Cpu) target(rec Record, n int) (pc uint32, err error) {
	op, err := ResolveTarget(rec, n)
	if err != nil {
		return
	}

	switch op.Kind {
	case OPERAND_LABEL:
		index, ok := cpu.Labels.Resolve(op.Label)
		if !ok {
			err = ErrLabelMissing(op.Label)
			return
		}
		pc = uint32(index)
	case OPERAND_REGISTER:
		pc = cpu.Get(op.Register)
	case OPERAND_IMMEDIATE:
		pc = op.Value
	}

	if int64(pc) > int64(cpu.Program.End()) {
		err = errors.Join(ErrLabelUnknown, ErrTargetInvalid)
		return
	}

	return
}

// compare sets the flags for a - b, unsigned. Carry is always cleared;
// overflow and saturation are not modelled.
func (cpu *Cpu) compare(a, b uint32) {
	sr := &cpu.Psr

	switch {
	case a == b:
		sr.Set(FLAG_Z, true)
		sr.Set(FLAG_N, false)
	case a > b:
		sr.Set(FLAG_Z, false)
		sr.Set(FLAG_N, false)
	default:
		sr.Set(FLAG_Z, false)
		sr.Set(FLAG_N, true)
	}

	sr.Set(FLAG_C, false)
}
