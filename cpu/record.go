package cpu

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MAX_TOKENS = 5 // Mnemonic or label, plus up to four operands.
)

// Record is a single tokenized program line.
type Record struct {
	Text   string             // Raw line text, truncated at the terminator and length bound.
	Tokens [MAX_TOKENS]string // Normalized tokens; unused slots are empty.
	Label  bool               // Set if token 0 is a label declaration.
}

// Tokenize normalizes a raw line and splits it into a Record.
//
// The line is truncated at its first line terminator and, if maxLen is
// positive, at maxLen bytes. Letters are folded to lower case; commas and
// tabs separate tokens like spaces. Tokens past the fifth are dropped.
func Tokenize(line string, maxLen int) (rec Record) {
	if end := strings.IndexAny(line, "\r\n"); end >= 0 {
		line = line[:end]
	}
	if maxLen > 0 && len(line) > maxLen {
		// Never split a multibyte rune.
		end := maxLen
		for end > 0 && !utf8.RuneStart(line[end]) {
			end--
		}
		line = line[:end]
	}

	rec.Text = line

	line = strings.Map(func(r rune) rune {
		switch r {
		case ',', '\t':
			return ' '
		}
		return unicode.ToLower(r)
	}, line)

	words := slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })
	copy(rec.Tokens[:], words)

	rec.Label = strings.HasSuffix(rec.Tokens[0], ":")

	return
}

// End returns true if the record is the program-end sentinel.
func (rec Record) End() bool {
	return len(rec.Tokens[0]) == 0 && !rec.Label
}

// Mnemonic returns token 0.
func (rec Record) Mnemonic() string {
	return rec.Tokens[0]
}

// LabelName returns the declared label name, without its trailing ':'.
func (rec Record) LabelName() string {
	if !rec.Label {
		return ""
	}
	return strings.TrimSuffix(rec.Tokens[0], ":")
}

// Operand returns operand token n (1-4).
func (rec Record) Operand(n int) (token string, err error) {
	if n < 1 || n >= MAX_TOKENS {
		err = ErrOperandIndex
		return
	}

	token = rec.Tokens[n]
	if len(token) == 0 {
		err = &ErrOperand{Index: n, Err: ErrOperandMissing}
		return
	}

	return
}

// Words returns the non-empty tokens.
func (rec Record) Words() (words []string) {
	for _, token := range rec.Tokens {
		if len(token) == 0 {
			break
		}
		words = append(words, token)
	}
	return
}

// String returns the normalized form of the record.
func (rec Record) String() string {
	words := rec.Words()
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return words[0]
	}
	return words[0] + " " + strings.Join(words[1:], ", ")
}
