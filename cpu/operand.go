package cpu

import (
	"strconv"
	"strings"
)

// OperandKind is the resolved meaning of an operand token.
type OperandKind int

const (
	OPERAND_REGISTER  = OperandKind(0)
	OPERAND_IMMEDIATE = OperandKind(1)
	OPERAND_LABEL     = OperandKind(2)
)

// Operand is a resolved operand.
type Operand struct {
	Kind     OperandKind
	Register Register // OPERAND_REGISTER
	Value    uint32   // OPERAND_IMMEDIATE
	Label    string   // OPERAND_LABEL
}

// namedRegisters maps the special register names.
var namedRegisters = map[string]Register{
	"sp": REG_SP,
	"lr": REG_LR,
	"pc": REG_PC,
}

// parseRegister parses a register token: r0-r12, sp, lr or pc.
func parseRegister(token string) (reg Register, ok bool) {
	reg, ok = namedRegisters[token]
	if ok {
		return
	}

	if len(token) < 2 || token[0] != 'r' {
		return
	}

	// Digits only; no sign, no base prefix.
	num, err := strconv.ParseUint(token[1:], 10, 8)
	if err != nil || num >= GENERAL_REGISTERS {
		return
	}

	return Register(num), true
}

// parseImmediate parses an immediate token: #<decimal> or #0x<hex>.
func parseImmediate(token string) (value uint32, err error) {
	body, ok := strings.CutPrefix(token, "#")
	if !ok {
		err = ErrImmediateInvalid
		return
	}

	var v64 uint64
	if hex, ok := strings.CutPrefix(body, "0x"); ok {
		v64, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v64, err = strconv.ParseUint(body, 10, 32)
	}
	if err != nil {
		err = ErrParseNumber(token)
		return
	}

	value = uint32(v64)
	return
}

// ResolveRegister resolves operand n of a record as a register.
func ResolveRegister(rec Record, n int) (reg Register, err error) {
	token, err := rec.Operand(n)
	if err != nil {
		return
	}

	reg, ok := parseRegister(token)
	if !ok {
		err = &ErrOperand{Index: n, Token: token, Err: ErrRegisterInvalid}
		return
	}

	return
}

// ResolveImmediate resolves operand n of a record as an immediate value.
func ResolveImmediate(rec Record, n int) (value uint32, err error) {
	token, err := rec.Operand(n)
	if err != nil {
		return
	}

	value, err = parseImmediate(token)
	if err != nil {
		err = &ErrOperand{Index: n, Token: token, Err: err}
		return
	}

	return
}

// ResolveOperand resolves operand n as a register, or failing that, as an
// immediate.
func ResolveOperand(rec Record, n int) (op Operand, err error) {
	token, err := rec.Operand(n)
	if err != nil {
		return
	}

	if reg, ok := parseRegister(token); ok {
		op = Operand{Kind: OPERAND_REGISTER, Register: reg}
		return
	}

	value, err := parseImmediate(token)
	if err == nil {
		op = Operand{Kind: OPERAND_IMMEDIATE, Value: value}
		return
	}

	// A '#' token is an immediate with a bad number; anything else is
	// neither form.
	if !strings.HasPrefix(token, "#") {
		err = ErrParseValue(token)
	}
	err = &ErrOperand{Index: n, Token: token, Err: err}

	return
}

// ResolveTarget resolves a branch operand. Registers and immediates name an
// absolute program index; any other token is a label reference.
func ResolveTarget(rec Record, n int) (op Operand, err error) {
	token, err := rec.Operand(n)
	if err != nil {
		return
	}

	if reg, ok := parseRegister(token); ok {
		op = Operand{Kind: OPERAND_REGISTER, Register: reg}
		return
	}

	if strings.HasPrefix(token, "#") {
		var value uint32
		value, err = parseImmediate(token)
		if err != nil {
			err = &ErrOperand{Index: n, Token: token, Err: err}
			return
		}
		op = Operand{Kind: OPERAND_IMMEDIATE, Value: value}
		return
	}

	op = Operand{Kind: OPERAND_LABEL, Label: token}
	return
}
