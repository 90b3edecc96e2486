// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/armemu/cpu"
	"github.com/ezrec/armemu/io"
)

// Emulator is a single session: CPU, loaded program and label table.
//
// Sessions are not safe for concurrent use; concurrent callers each need
// their own Emulator.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Config Config // Limits for loading and running programs.
	Sink   Sink   // Receives every reported problem.

	Steps int // Records executed by the last Run.
}

// NewEmulator creates a new emulator session with an empty program.
func NewEmulator(cfg Config) (emu *Emulator) {
	cfg = cfg.withDefaults()

	emu = &Emulator{
		Verbose: cfg.Verbose,
		Cpu:     cpu.NewCpu(),
		Config:  cfg,
		Sink:    LogSink{},
	}

	emu.Cpu.Program.Capacity = cfg.MaxInstructions

	return
}

// diagnose reports an error to the sink.
func (emu *Emulator) diagnose(err error) {
	if emu.Sink == nil {
		return
	}
	emu.Sink.Diagnose(NewDiagnostic(err))
}

// Assembler returns an assembler configured with the session limits.
func (emu *Emulator) Assembler() *cpu.Assembler {
	return &cpu.Assembler{
		Verbose:       emu.Verbose,
		Capacity:      emu.Config.MaxInstructions,
		MaxLineLength: emu.Config.MaxLineLength,
	}
}

// LoadFile loads and runs a program file. If the file cannot be opened the
// session is left unchanged.
func (emu *Emulator) LoadFile(path string) (err error) {
	src, err := io.Open(path)
	if err != nil {
		emu.diagnose(err)
		return
	}
	defer src.Close()

	return emu.Load(src)
}

// Load reads a program from a line source, rebuilds the label table,
// resets the registers and runs the program from index 0.
//
// If the source fails or the program does not fit, the session is left
// unchanged.
func (emu *Emulator) Load(src io.Source) (err error) {
	asm := emu.Assembler()

	prog, labels, err := asm.Parse(src)
	if err != nil {
		emu.diagnose(err)
		return
	}

	for _, warning := range asm.Warnings {
		emu.diagnose(warning)
	}

	emu.Cpu.Program = prog
	emu.Cpu.Labels = labels
	emu.Reset()

	return emu.Run()
}

// Reset clears the registers and flags.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Steps = 0
}

// Done returns true if the program counter is at the end sentinel.
func (emu *Emulator) Done() bool {
	return emu.Cpu.Fetch().End()
}

// Tick executes the record at the program counter. It returns done when
// the program counter is at the end sentinel. Errors from a single record
// do not stop the program; the caller decides whether to continue.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	rec := emu.Cpu.Fetch()
	if rec.End() {
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Line: rec.Text, Err: err}
		}
	}()

	if emu.Verbose {
		log.Printf("Run: PC - %08X, instr - %v", pc, rec.Text)
	}

	err = emu.Cpu.Execute(rec)
	return
}

// Run executes from the current program counter until the end sentinel.
//
// Per-record errors are reported to the sink and execution continues. Run
// halts with ErrStalled when a record leaves the program counter unchanged,
// and with ErrStepLimit after Config.StepLimit records.
func (emu *Emulator) Run() (err error) {
	emu.Steps = 0

	for {
		if emu.Done() {
			return
		}

		pc := emu.Cpu.Pc
		if emu.Steps >= emu.Config.StepLimit {
			err = &ErrRuntime{Pc: pc, Line: emu.Cpu.Fetch().Text, Err: ErrStepLimit}
			emu.diagnose(err)
			return
		}

		_, terr := emu.Tick()
		emu.Steps++
		if terr != nil {
			emu.diagnose(terr)
		}

		if emu.Cpu.Pc == pc {
			err = &ErrRuntime{Pc: pc, Line: emu.Cpu.Fetch().Text, Err: errors.Join(ErrStalled, terr)}
			emu.diagnose(&ErrRuntime{Pc: pc, Line: emu.Cpu.Fetch().Text, Err: ErrStalled})
			return
		}
	}
}

// Exec tokenizes and executes a single line against the live register
// file. Blank lines do nothing.
func (emu *Emulator) Exec(line string) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	rec := cpu.Tokenize(line, emu.Config.MaxLineLength)
	if rec.End() {
		return
	}

	pc := emu.Cpu.Pc
	err = emu.Cpu.Execute(rec)
	if err != nil {
		err = &ErrRuntime{Pc: pc, Line: rec.Text, Err: err}
		emu.diagnose(err)
	}

	return
}

// State returns a snapshot of the register file.
func (emu *Emulator) State() cpu.RegisterFile {
	return emu.Cpu.RegisterFile
}
