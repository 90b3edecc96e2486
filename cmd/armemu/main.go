// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	goio "io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/armemu/emulator"
	"github.com/ezrec/armemu/translate"
)

var f = translate.From

// options holds the command line settings shared by every command.
type options struct {
	config  emulator.Config
	logPath string
	lang    string

	expect []string
	list   bool
}

// newEmulator builds an emulator session whose diagnostics go to stderr,
// or to a JSON log file when one is requested.
func (opts *options) newEmulator(cmd *cobra.Command) (emu *emulator.Emulator, err error) {
	if len(opts.lang) != 0 {
		err = translate.SetLanguage(opts.lang)
		if err != nil {
			return
		}
	}

	var handler slog.Handler
	if len(opts.logPath) != 0 {
		var ouf *os.File
		ouf, err = os.Create(opts.logPath)
		if err != nil {
			return
		}
		atexit.Register(func() { ouf.Close() })
		handler = slog.NewJSONHandler(ouf, nil)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), nil)
	}

	emu = emulator.NewEmulator(opts.config)
	emu.Sink = emulator.LogSink{Logger: slog.New(handler)}

	return
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "armemu",
		Short: "A toy Cortex-M instruction emulator",
		Long: `Armemu executes a tiny subset of Cortex-M assembly: mov, cmp and blt,
plus labels. Without arguments it reads commands from standard input:

  load FILE    load FILE and run it from the first record
  state        print the register file
  anything     execute as a single instruction`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			emu, err := opts.newEmulator(cmd)
			if err != nil {
				return
			}

			repl := &Repl{
				Emulator: emu,
				Input:    cmd.InOrStdin(),
				Output:   cmd.OutOrStdout(),
				Prompt:   "arm-emu> ",
			}

			return repl.Run()
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&opts.config.MaxInstructions, "capacity", emulator.DEFAULT_MAX_INSTRUCTIONS, "program capacity, in records")
	flags.IntVar(&opts.config.MaxLineLength, "line-length", emulator.DEFAULT_MAX_LINE_LENGTH, "longer lines are truncated")
	flags.IntVar(&opts.config.StepLimit, "steps", emulator.DEFAULT_STEP_LIMIT, "maximum records executed per run")
	flags.BoolVarP(&opts.config.Verbose, "verbose", "v", false, "trace every executed record")
	flags.StringVar(&opts.logPath, "log", "", "write diagnostics as JSON to this file")
	flags.StringVar(&opts.lang, "lang", "", "message language, such as de-DE (default: host locale)")

	run := &cobra.Command{
		Use:   "run FILE",
		Short: "Load and run a program, then print the register file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			emu, err := opts.newEmulator(cmd)
			if err != nil {
				return
			}
			return runProgram(cmd.OutOrStdout(), emu, args[0], opts)
		},
	}

	run.Flags().StringArrayVarP(&opts.expect, "expect", "e", nil, "expression that must hold after the run, such as 'r0 == 5'")
	run.Flags().BoolVarP(&opts.list, "list", "l", false, "print the program and label table")

	root.AddCommand(run)

	return root
}

// loaded returns true if a load replaced the program, whether or not its
// run then halted early.
func loaded(err error) bool {
	switch emulator.KindOf(err) {
	case emulator.KIND_SOURCE_UNAVAILABLE, emulator.KIND_CAPACITY_EXCEEDED:
		return false
	}
	return true
}

// runProgram loads a file, prints the results, and checks every
// expectation against the final register file.
func runProgram(out goio.Writer, emu *emulator.Emulator, path string, opts *options) (err error) {
	err = emu.LoadFile(path)
	if !loaded(err) {
		return
	}
	halt := err

	if opts.list {
		WriteProgram(out, emu.Program)
		WriteLabels(out, emu.Labels)
	}

	WriteState(out, emu.State())

	for _, expr := range opts.expect {
		var ok bool
		ok, err = emu.Expect(expr)
		if err != nil {
			return
		}
		if !ok {
			err = fmt.Errorf("%w: %v", ErrExpectFailed, expr)
			return
		}
	}

	err = halt
	return
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		log.Printf("armemu: %v", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
