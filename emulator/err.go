package emulator

import (
	"errors"

	"github.com/ezrec/armemu/translate"
)

var f = translate.From

var (
	// Execution loop errors
	ErrStalled   = errors.New(f("stalled: program counter did not advance"))
	ErrStepLimit = errors.New(f("step limit exceeded"))

	// Expectation errors
	ErrExpectResult = errors.New(f("expectation has no result"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc   uint32
	Line string
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d '%v' %v", err.Pc, err.Line, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
