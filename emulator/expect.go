package emulator

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/armemu/cpu"
)

// predeclared returns the register file as Starlark values: r0-r12, sp, lr
// and pc as integers, and the flags n, z, c, v and q as booleans.
func predeclared(rf cpu.RegisterFile) starlark.StringDict {
	pred := starlark.StringDict{}

	for reg := range cpu.Registers() {
		pred[reg.String()] = starlark.MakeUint(uint(rf.Get(reg)))
	}

	flags := map[string]cpu.Flag{
		"n": cpu.FLAG_N,
		"z": cpu.FLAG_Z,
		"c": cpu.FLAG_C,
		"v": cpu.FLAG_V,
		"q": cpu.FLAG_Q,
	}
	for name, flag := range flags {
		pred[name] = starlark.Bool(rf.Psr.Get(flag))
	}

	return pred
}

// Expect evaluates a Starlark expression against the current register
// file, such as "r0 == 5 and not n". The result is the expression's truth
// value.
func (emu *Emulator) Expect(expr string) (ok bool, err error) {
	thread := starlark.Thread{Name: "expect"}
	opts := syntax.FileOptions{}

	prog := "rc = (" + expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expect", prog, predeclared(emu.State()))
	if err != nil {
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = ErrExpectResult
		return
	}

	ok = bool(rc.Truth())
	return
}
