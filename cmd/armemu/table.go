package main

import (
	"fmt"
	goio "io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/armemu/cpu"
	"github.com/ezrec/armemu/translate"
)

// WriteState renders the register file as a table.
func WriteState(w goio.Writer, rf cpu.RegisterFile) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(f("Registers"))
	tw.AppendHeader(table.Row{f("Register"), f("Hex"), f("Decimal")})

	for reg := range cpu.Registers() {
		value := rf.Get(reg)
		tw.AppendRow(table.Row{reg.String(), fmt.Sprintf("0x%08X", value), translate.Number(value)})
	}

	tw.AppendFooter(table.Row{"psr", fmt.Sprintf("0x%08X", uint32(rf.Psr)), rf.Psr.String()})
	tw.Render()
}

// WriteProgram renders the reachable records of a program with their
// classification.
func WriteProgram(w goio.Writer, prog *cpu.Program) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(f("Program"))
	tw.AppendHeader(table.Row{f("Index"), f("Opcode"), f("Record")})

	for pc, rec := range prog.Records() {
		tw.AppendRow(table.Row{pc, cpu.Classify(rec).String(), rec.Text})
	}

	tw.Render()
}

// WriteLabels renders the label table in definition order.
func WriteLabels(w goio.Writer, labels *cpu.Labels) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(f("Labels"))
	tw.AppendHeader(table.Row{f("Label"), f("Index")})

	for name, pc := range labels.All() {
		tw.AppendRow(table.Row{name, pc})
	}

	tw.Render()
}
