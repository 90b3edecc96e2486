package cpu

import (
	"strings"
)

// Opcode is the class of a record.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BAD   = Opcode(0) // bad
	OP_LOAD  = Opcode(1) // load
	OP_STATE = Opcode(2) // state
	OP_MOV   = Opcode(3) // mov
	OP_CMP   = Opcode(4) // cmp
	OP_BLT   = Opcode(5) // blt
	OP_LABEL = Opcode(6) // label
)

// mnemonicTable lists the opcodes matched by mnemonic, in match order.
var mnemonicTable = []Opcode{
	OP_LOAD,
	OP_STATE,
	OP_MOV,
	OP_CMP,
	OP_BLT,
}

// Classify returns the opcode of a record.
//
// Label declarations classify as OP_LABEL whatever their name. Otherwise
// token 0 is matched by prefix against the mnemonic table, so "movs" is a
// mov; anything unmatched is OP_BAD.
func Classify(rec Record) Opcode {
	if rec.Label {
		return OP_LABEL
	}

	mnemonic := rec.Mnemonic()
	for _, op := range mnemonicTable {
		if strings.HasPrefix(mnemonic, op.String()) {
			return op
		}
	}

	return OP_BAD
}

// Architectural returns true for opcodes the Cpu executes.
func (op Opcode) Architectural() bool {
	switch op {
	case OP_MOV, OP_CMP, OP_BLT, OP_LABEL:
		return true
	}
	return false
}

// Meta returns true for session commands that are not instructions.
func (op Opcode) Meta() bool {
	return op == OP_LOAD || op == OP_STATE
}
