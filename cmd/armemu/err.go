package main

import (
	"errors"
)

var (
	ErrExpectFailed = errors.New(f("expectation failed"))
)
