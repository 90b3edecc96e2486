package cpu

import (
	"iter"
)

// Program is a bounded store of tokenized records.
type Program struct {
	Capacity int // Maximum number of records; zero or less is unbounded.

	records []Record
}

// NewProgram creates an empty program store.
func NewProgram(capacity int) *Program {
	return &Program{Capacity: capacity}
}

// Full returns true if no more records can be appended.
func (prog *Program) Full() bool {
	return prog.Capacity > 0 && len(prog.records) >= prog.Capacity
}

// Append copies a record into the next free slot.
func (prog *Program) Append(rec Record) (err error) {
	if prog.Full() {
		err = ErrProgramFull
		return
	}

	prog.records = append(prog.records, rec)
	return
}

// Len returns the number of stored records, including any after the end.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.records)
}

// At returns the record at a program index. Indexes outside the store
// return the empty end sentinel.
func (prog *Program) At(pc int) (rec Record) {
	if prog == nil || pc < 0 || pc >= len(prog.records) {
		return
	}
	return prog.records[pc]
}

// End returns the index of the first end sentinel, which is the logical
// length of the program.
func (prog *Program) End() int {
	if prog == nil {
		return 0
	}
	for pc, rec := range prog.records {
		if rec.End() {
			return pc
		}
	}
	return len(prog.records)
}

// Records iterates over the records before the end sentinel.
func (prog *Program) Records() iter.Seq2[int, Record] {
	return func(yield func(pc int, rec Record) bool) {
		end := prog.End()
		for pc := range end {
			if !yield(pc, prog.records[pc]) {
				return
			}
		}
	}
}
