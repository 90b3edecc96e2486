package cpu

import (
	"errors"

	"github.com/ezrec/armemu/translate"
)

var f = translate.From

var (
	// Operand resolution errors
	ErrOperandUnresolved = errors.New(f("operand unresolved"))
	ErrOperandIndex      = errors.New(f("operand index out of range"))
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrRegisterInvalid   = errors.New(f("register invalid"))
	ErrRegisterReadOnly  = errors.New(f("register read-only"))
	ErrImmediateInvalid  = errors.New(f("immediate invalid"))

	// Instruction errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrOpcodeMov     = errors.New(f("mov"))
	ErrOpcodeCmp     = errors.New(f("cmp"))
	ErrOpcodeBlt     = errors.New(f("blt"))
	ErrLabelUnknown  = errors.New(f("label unknown"))
	ErrTargetInvalid = errors.New(f("branch target invalid"))

	// Program load errors
	ErrProgramFull    = errors.New(f("program capacity exceeded"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
)

// ErrLabelMissing names a branch label absent from the label table.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Unwrap() error {
	return ErrLabelUnknown
}

// ErrMnemonic names a mnemonic that is not in the instruction table.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("bad instruction '%v'", string(em))
}

func (em ErrMnemonic) Unwrap() error {
	return ErrOpcodeInvalid
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

// ErrOperand is an operand that could not be resolved.
type ErrOperand struct {
	Index int    // Operand position, 1-4.
	Token string // Operand token text.
	Err   error
}

func (err *ErrOperand) Error() string {
	return f("operand %d '%v' %v", err.Index, err.Token, err.Err)
}

func (err *ErrOperand) Unwrap() []error {
	return []error{ErrOperandUnresolved, err.Err}
}

// ErrSyntax locates a load-time problem in the program text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
