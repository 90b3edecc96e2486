package main

import (
	"errors"
	"fmt"
	goio "io"
	"strings"

	"github.com/ezrec/armemu/cpu"
	"github.com/ezrec/armemu/emulator"
	"github.com/ezrec/armemu/io"
)

// Repl is the interactive command loop.
type Repl struct {
	Emulator *emulator.Emulator
	Input    goio.Reader
	Output   goio.Writer
	Prompt   string
}

// Run prompts for and executes commands until the input ends. Command
// errors are reported through the emulator's sink and do not stop the
// loop.
func (repl *Repl) Run() (err error) {
	src := &io.Reader{Name: "stdin", Input: repl.Input}

	for {
		fmt.Fprint(repl.Output, repl.Prompt)

		var line string
		line, err = src.Next()
		if errors.Is(err, goio.EOF) {
			fmt.Fprintln(repl.Output)
			err = nil
			return
		}
		if err != nil {
			return
		}

		repl.Command(line)
	}
}

// Command executes one line: the load and state commands, or otherwise a
// single instruction against the live register file. Failures reach the
// user through the emulator's sink.
func (repl *Repl) Command(line string) {
	emu := repl.Emulator

	rec := cpu.Tokenize(line, emu.Config.MaxLineLength)

	op := cpu.Classify(rec)
	if !op.Meta() {
		emu.Exec(line)
		return
	}

	switch op {
	case cpu.OP_LOAD:
		// The path keeps its case; only the first word is the command.
		var path string
		if fields := strings.Fields(rec.Text); len(fields) > 1 {
			path = fields[1]
		}
		if loaded(emu.LoadFile(path)) {
			WriteProgram(repl.Output, emu.Program)
			WriteLabels(repl.Output, emu.Labels)
		}
	case cpu.OP_STATE:
		WriteState(repl.Output, emu.State())
	}
}
