// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/armemu/io"
)

// Assembler loads program text into a Program and its label table.
type Assembler struct {
	Verbose       bool // If set, verbosely logs the assembler actions.
	Capacity      int  // Program capacity; zero or less is unbounded.
	MaxLineLength int  // Record text bound; zero or less is unbounded.

	Warnings []error // Non-fatal problems found by the last Parse.
}

// Parse reads every line of a source into a new Program, then builds the
// label table by scanning the program up to its end sentinel.
//
// Once the program is full, further blank lines are ignored and any other
// line fails with ErrProgramFull. Duplicate labels keep their first
// definition and are reported in Warnings.
func (asm *Assembler) Parse(src io.Source) (prog *Program, labels *Labels, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
			labels = nil
		}
	}()

	asm.Warnings = asm.Warnings[:0]
	prog = NewProgram(asm.Capacity)

	for text, rerr := range io.All(src) {
		lineno += 1
		line = text

		if rerr != nil {
			err = rerr
			return
		}

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		rec := Tokenize(text, asm.MaxLineLength)
		if prog.Full() && rec.End() {
			continue
		}

		err = prog.Append(rec)
		if err != nil {
			return
		}
	}

	labels = &Labels{}
	for pc, rec := range prog.Records() {
		name := rec.LabelName()
		if len(name) == 0 {
			continue
		}
		if !labels.Define(name, pc) {
			asm.Warnings = append(asm.Warnings, &ErrSyntax{LineNo: pc + 1, Line: rec.Text, Err: ErrLabelDuplicate})
		}
	}

	return
}
