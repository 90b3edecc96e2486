package emulator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/armemu/cpu"
	"github.com/ezrec/armemu/io"
)

func newTestEmulator(cfg Config) (emu *Emulator, rec *Recorder) {
	rec = &Recorder{}
	emu = NewEmulator(cfg)
	emu.Sink = rec
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	assert.False(emu.Verbose)
	assert.Equal(DEFAULT_MAX_INSTRUCTIONS, emu.Config.MaxInstructions)
	assert.Equal(DEFAULT_MAX_LINE_LENGTH, emu.Config.MaxLineLength)
	assert.Equal(DEFAULT_STEP_LIMIT, emu.Config.StepLimit)
	assert.Equal(cpu.RegisterFile{}, emu.State())
	assert.True(emu.Done())

	emu = NewEmulator(Config{StepLimit: 7, Verbose: true})
	assert.True(emu.Verbose)
	assert.Equal(7, emu.Config.StepLimit)
}

func TestEmulatorExec(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	assert.NoError(emu.Exec("mov r0, #5"))
	state := emu.State()
	assert.Equal(uint32(5), state.R[0])
	assert.Equal(uint32(1), state.Pc)

	assert.NoError(emu.Exec("mov r1, r0"))
	assert.Equal(uint32(5), emu.State().R[1])

	assert.NoError(emu.Exec("cmp r0, #5"))
	assert.True(emu.State().Psr.Get(cpu.FLAG_Z))
	assert.False(emu.State().Psr.Get(cpu.FLAG_N))

	assert.NoError(emu.Exec("cmp r0, #3"))
	assert.False(emu.State().Psr.Get(cpu.FLAG_Z))
	assert.False(emu.State().Psr.Get(cpu.FLAG_N))

	assert.NoError(emu.Exec("cmp r0, #7"))
	assert.False(emu.State().Psr.Get(cpu.FLAG_Z))
	assert.True(emu.State().Psr.Get(cpu.FLAG_N))

	assert.NoError(emu.Exec(""))
	assert.Empty(rec.Diagnostics)

	err := emu.Exec("frob r0")
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	assert.Equal([]DiagnosticKind{KIND_BAD_OPCODE}, rec.Kinds())
	assert.Equal("frob r0", rec.Diagnostics[0].Line)
	assert.Equal(uint32(5), rec.Diagnostics[0].Pc)
}

func TestEmulatorState(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(Config{})
	assert.NoError(emu.Exec("mov r0, #5"))

	state := emu.State()
	state.R[0] = 99
	assert.Equal(uint32(5), emu.State().R[0])
}

func TestEmulatorLoad(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r0, #0",
		"mov r1, #0x3",
		"loop:",
		"cmp r0, r1",
		"mov r2, r0",
		"blt end",
		"mov r3, #1",
		"end:",
	}

	err := emu.Load(io.NewLines(program...))
	assert.NoError(err)
	assert.Empty(rec.Diagnostics)

	// The taken branch skips "mov r3, #1".
	state := emu.State()
	assert.Equal(uint32(3), state.R[1])
	assert.Equal(uint32(0), state.R[2])
	assert.Equal(uint32(0), state.R[3])
	assert.True(state.Psr.Get(cpu.FLAG_N))
	assert.Equal(uint32(len(program)), state.Pc)
	assert.Equal(7, emu.Steps)
}

func TestEmulatorLoadBranchToLabel(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r0, #1",
		"cmp r0, #2",
		"blt end",
		"mov r5, #55",
		"end:",
	}

	assert.NoError(emu.Load(io.NewLines(program...)))
	assert.Empty(rec.Diagnostics)

	// The branch skipped the mov, landed on end: and stepped past it.
	state := emu.State()
	assert.Equal(uint32(0), state.R[5])
	assert.Equal(uint32(5), state.Pc)
	assert.Equal(4, emu.Steps)
}

func TestEmulatorBranchIndex(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r0, #0",
		"cmp r0, #1",
		"blt #4",
		"mov r1, #1",
		"mov r2, #2",
	}

	assert.NoError(emu.Load(io.NewLines(program...)))
	assert.Empty(rec.Diagnostics)

	state := emu.State()
	assert.Equal(uint32(0), state.R[1])
	assert.Equal(uint32(2), state.R[2])
	assert.Equal(uint32(5), state.Pc)
}

func TestEmulatorBranchIndexInvalid(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r3, #99",
		"cmp r0, #1",
		"blt r3",
		"mov r1, #1",
	}

	assert.NoError(emu.Load(io.NewLines(program...)))
	assert.Equal([]DiagnosticKind{KIND_UNKNOWN_LABEL}, rec.Kinds())
	assert.ErrorIs(rec.Diagnostics[0].Err, cpu.ErrTargetInvalid)
	assert.Equal(uint32(1), emu.State().R[1])
}

func TestEmulatorStall(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r0, #1",
		"add r0, r0, #1",
		"mov r1, #2",
	}

	err := emu.Load(io.NewLines(program...))
	assert.ErrorIs(err, ErrStalled)
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	assert.Equal(KIND_STALLED_EXECUTION, KindOf(err))
	assert.Equal([]DiagnosticKind{KIND_BAD_OPCODE, KIND_STALLED_EXECUTION}, rec.Kinds())

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(uint32(1), runtime.Pc)
	assert.Equal("add r0, r0, #1", runtime.Line)

	state := emu.State()
	assert.Equal(uint32(1), state.R[0])
	assert.Equal(uint32(0), state.R[1])
	assert.Equal(uint32(1), state.Pc)
}

func TestEmulatorStallOperand(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	err := emu.Load(io.NewLines("mov r0, r13"))
	assert.ErrorIs(err, ErrStalled)
	assert.Equal([]DiagnosticKind{KIND_UNRESOLVED_OPERAND, KIND_STALLED_EXECUTION}, rec.Kinds())
}

func TestEmulatorStallBranchSelf(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	table := [][]string{
		{"cmp r0, #1", "blt #1"},
		{"mov r1, #0", "cmp r0, #1", "blt #2"},
		{"mov r2, #2", "cmp r0, #1", "blt r2"},
	}

	for _, program := range table {
		rec.Reset()

		err := emu.Load(io.NewLines(program...))
		assert.ErrorIs(err, ErrStalled, program)
		assert.Equal([]DiagnosticKind{KIND_STALLED_EXECUTION}, rec.Kinds(), program)

		var runtime *ErrRuntime
		assert.ErrorAs(err, &runtime)
		assert.Equal(uint32(len(program)-1), runtime.Pc, program)
		assert.Equal(program[len(program)-1], runtime.Line, program)
	}
}

func TestEmulatorLoopHalts(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{StepLimit: 64})

	// Flags are clear after load, so the branch falls through.
	err := emu.Load(io.NewLines("loop: cmp r0, #0", "blt loop"))
	assert.NoError(err)
	assert.Empty(rec.Diagnostics)
	assert.Equal(uint32(2), emu.State().Pc)
	assert.LessOrEqual(emu.Steps, 64)
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{StepLimit: 50})

	program := []string{
		"mov r1, #1",
		"loop:",
		"cmp r0, r1",
		"blt loop",
	}

	err := emu.Load(io.NewLines(program...))
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(50, emu.Steps)
	assert.Equal([]DiagnosticKind{KIND_STEP_LIMIT_EXCEEDED}, rec.Kinds())

	// The session survives: a new load starts from a fresh state.
	rec.Reset()
	assert.NoError(emu.Load(io.NewLines("mov r2, #2")))
	assert.Equal(uint32(0), emu.State().R[1])
	assert.Equal(uint32(2), emu.State().R[2])
	assert.Empty(rec.Diagnostics)
}

func TestEmulatorExactStepLimit(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(Config{StepLimit: 3})

	assert.NoError(emu.Load(io.NewLines("mov r0, #1", "mov r1, #2", "mov r2, #3")))
	assert.Equal(3, emu.Steps)
}

func TestEmulatorUnknownLabel(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"cmp r0, #1",
		"blt nowhere",
		"mov r1, #1",
	}

	err := emu.Load(io.NewLines(program...))
	assert.NoError(err)
	assert.Equal([]DiagnosticKind{KIND_UNKNOWN_LABEL}, rec.Kinds())
	assert.Equal(uint32(1), rec.Diagnostics[0].Pc)
	assert.Equal(uint32(1), emu.State().R[1])
	assert.Equal(uint32(3), emu.State().Pc)
}

func TestEmulatorDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	program := []string{
		"mov r0, #0",
		"again:",
		"cmp r0, #1",
		"blt again_target",
		"again_target:",
		"again:",
	}

	assert.NoError(emu.Load(io.NewLines(program...)))
	assert.Equal([]DiagnosticKind{KIND_DUPLICATE_LABEL}, rec.Kinds())

	pc, ok := emu.Labels.Resolve("again")
	assert.True(ok)
	assert.Equal(1, pc)
}

func TestEmulatorCapacity(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{MaxInstructions: 2})

	assert.NoError(emu.Load(io.NewLines("mov r0, #7", "x:")))
	before := emu.State()

	err := emu.Load(io.NewLines("mov r0, #1", "mov r1, #1", "mov r2, #1"))
	assert.ErrorIs(err, cpu.ErrProgramFull)
	assert.Equal([]DiagnosticKind{KIND_CAPACITY_EXCEEDED}, rec.Kinds())
	assert.Equal(before, emu.State())
	assert.Equal("mov r0, #7", emu.Program.At(0).Text)
}

func TestEmulatorLoadFile(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	path := filepath.Join(t.TempDir(), "count.s")
	text := strings.Join([]string{
		"MOV R0, #0x10",
		"Cmp R0, #16",
		"BLT skip",
		"mov r1, r0",
		"skip:",
	}, "\n") + "\n"
	assert.NoError(os.WriteFile(path, []byte(text), 0o644))

	assert.NoError(emu.LoadFile(path))
	assert.Empty(rec.Diagnostics)
	assert.Equal(uint32(16), emu.State().R[0])
	assert.Equal(uint32(16), emu.State().R[1])
	assert.True(emu.State().Psr.Get(cpu.FLAG_Z))
}

func TestEmulatorLoadFileMissing(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	assert.NoError(emu.Load(io.NewLines("mov r4, #4", "done:")))
	before := emu.State()
	prog := emu.Program
	labels := emu.Labels

	err := emu.LoadFile(filepath.Join(t.TempDir(), "missing.s"))
	assert.ErrorIs(err, io.ErrSourceUnavailable)
	assert.Equal([]DiagnosticKind{KIND_SOURCE_UNAVAILABLE}, rec.Kinds())

	assert.Equal(before, emu.State())
	assert.Same(prog, emu.Program)
	assert.Same(labels, emu.Labels)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(Config{})
	emu.Program = cpu.NewProgram(4)
	for _, line := range []string{"mov r0, #1", "bogus"} {
		assert.NoError(emu.Program.Append(cpu.Tokenize(line, 0)))
	}

	done, err := emu.Tick()
	assert.False(done)
	assert.NoError(err)

	done, err = emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	assert.Equal(uint32(1), emu.State().Pc)

	emu.Pc = 2
	done, err = emu.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestEmulatorLoadFileLongLine(t *testing.T) {
	assert := assert.New(t)

	emu, rec := newTestEmulator(Config{})

	path := filepath.Join(t.TempDir(), "long.s")
	text := "mov r0, #5\nmov r1, #1 " + strings.Repeat("x", 70000) + "\n"
	assert.NoError(os.WriteFile(path, []byte(text), 0o644))

	assert.NoError(emu.LoadFile(path))
	assert.Empty(rec.Diagnostics)
	assert.Equal(uint32(5), emu.State().R[0])
	assert.Equal(uint32(1), emu.State().R[1])
	assert.Len(emu.Program.At(1).Text, DEFAULT_MAX_LINE_LENGTH)
}
