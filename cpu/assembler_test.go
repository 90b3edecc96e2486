package cpu

import (
	"errors"
	goio "io"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/armemu/io"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, labels, err := asm.Parse(io.NewLines())
	assert.NoError(err)
	assert.Equal(0, prog.Len())
	assert.Equal(0, labels.Len())
	assert.Empty(asm.Warnings)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"MOV R0, #0",
		"Loop:",
		"cmp r0, #3",
		"blt loop",
		"End:",
	}

	prog, labels, err := asm.Parse(io.NewLines(program...))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(5, prog.Len())
	assert.Equal(5, prog.End())
	assert.Equal(map[string]int{"loop": 1, "end": 4}, maps.Collect(labels.All()))
	assert.Equal([5]string{"mov", "r0", "#0"}, prog.At(0).Tokens)
	assert.Equal("MOV R0, #0", prog.At(0).Text)
}

func TestAssemblerSentinel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"first:",
		"mov r0, #1",
		"",
		"after:",
		"mov r1, #1",
	}

	prog, labels, err := asm.Parse(io.NewLines(program...))
	assert.NoError(err)

	// Labels past the end sentinel are not reachable, so not defined.
	assert.Equal(5, prog.Len())
	assert.Equal(2, prog.End())
	assert.Equal(map[string]int{"first": 0}, maps.Collect(labels.All()))
}

func TestAssemblerDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, labels, err := asm.Parse(io.NewLines("x:", "mov r0, #1", "X:", ":"))
	assert.NoError(err)
	assert.Equal(4, prog.Len())

	pc, ok := labels.Resolve("x")
	assert.True(ok)
	assert.Equal(0, pc)

	assert.Len(asm.Warnings, 1)
	assert.ErrorIs(asm.Warnings[0], ErrLabelDuplicate)
	var syntax *ErrSyntax
	assert.ErrorAs(asm.Warnings[0], &syntax)
	assert.Equal(3, syntax.LineNo)

	// Warnings reset on each parse.
	_, _, err = asm.Parse(io.NewLines("x:"))
	assert.NoError(err)
	assert.Empty(asm.Warnings)
}

func TestAssemblerCapacity(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Capacity: 2}

	prog, _, err := asm.Parse(io.NewLines("mov r0, #1", "mov r1, #2", "", "  "))
	assert.NoError(err)
	assert.Equal(2, prog.Len())

	prog, labels, err := asm.Parse(io.NewLines("mov r0, #1", "mov r1, #2", "mov r2, #3"))
	assert.ErrorIs(err, ErrProgramFull)
	assert.Nil(prog)
	assert.Nil(labels)
	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(3, syntax.LineNo)
	assert.Equal("mov r2, #3", syntax.Line)
}

func TestAssemblerLineLength(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{MaxLineLength: 8}

	prog, _, err := asm.Parse(io.NewLines("mov r0, #123"))
	assert.NoError(err)
	assert.Equal("mov r0, ", prog.At(0).Text)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("i/o error")
}

func TestAssemblerSource(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, _, err := asm.Parse(&io.Reader{Input: strings.NewReader("mov r0, #1\nblt x\n")})
	assert.NoError(err)
	assert.Equal(2, prog.Len())

	prog, _, err = asm.Parse(&io.Reader{Name: "broken", Input: brokenReader{}})
	assert.ErrorIs(err, io.ErrSourceUnavailable)
	assert.Nil(prog)

	// The failing read is located at the line it would have produced.
	input := goio.MultiReader(strings.NewReader("mov r0, #1\nmov r1, #2\n"), brokenReader{})
	_, _, err = asm.Parse(&io.Reader{Name: "broken", Input: input})
	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(3, syntax.LineNo)
	assert.Equal("", syntax.Line)
}

func TestAssemblerLongLine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{MaxLineLength: 16}

	long := "mov r1, #1 " + strings.Repeat("x", 70000)
	prog, _, err := asm.Parse(&io.Reader{Input: strings.NewReader("mov r0, #5\n" + long + "\n")})
	assert.NoError(err)
	assert.Equal(2, prog.Len())
	assert.Equal("mov r1, #1 xxxxx", prog.At(1).Text)
}
