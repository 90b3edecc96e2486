package cpu

import (
	"iter"
)

// Label is a declared label and the program index it names.
type Label struct {
	Name string
	Pc   int
}

// Labels is the label table of a loaded program.
type Labels struct {
	entries []Label
	index   map[string]int
}

// Define registers a label at a program index. The first definition of a
// name wins; redefining it, or defining an empty name, returns false and
// leaves the table unchanged.
func (lt *Labels) Define(name string, pc int) (ok bool) {
	if len(name) == 0 {
		return
	}

	if lt.index == nil {
		lt.index = make(map[string]int, 16)
	}

	_, dup := lt.index[name]
	if dup {
		return
	}

	lt.index[name] = len(lt.entries)
	lt.entries = append(lt.entries, Label{Name: name, Pc: pc})

	return true
}

// Resolve returns the program index of a label.
func (lt *Labels) Resolve(name string) (pc int, ok bool) {
	if lt == nil {
		return
	}

	n, ok := lt.index[name]
	if !ok {
		return
	}

	return lt.entries[n].Pc, true
}

// Len returns the number of labels defined.
func (lt *Labels) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.entries)
}

// All iterates over the labels in definition order.
func (lt *Labels) All() iter.Seq2[string, int] {
	return func(yield func(name string, pc int) bool) {
		if lt == nil {
			return
		}
		for _, label := range lt.entries {
			if !yield(label.Name, label.Pc) {
				return
			}
		}
	}
}
