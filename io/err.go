package io

import (
	"errors"

	"github.com/ezrec/armemu/translate"
)

var f = translate.From

var (
	// Source errors
	ErrSourceUnavailable = errors.New(f("source unavailable"))
)

// ErrSource records which source could not be opened or read.
type ErrSource struct {
	Name string
	Err  error
}

func (err *ErrSource) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrSource) Unwrap() []error {
	return []error{ErrSourceUnavailable, err.Err}
}
