// Package cpu implements the register file, tokenizer and instruction
// dispatcher for a reduced Cortex-M style core.
//
// Programs are plain text, one instruction per line. Each line is tokenized
// into a Record holding a mnemonic (or label declaration) and up to four
// operands. Operands name a register (r0-r12, sp, lr, pc), an immediate
// (#10, #0xA) or, for branches, a label. Labels live in a side table and are
// resolved when a branch executes; label lines themselves execute as no-ops.
//
// The supported instructions are mov, cmp and blt. Only the Negative, Zero
// and Carry flags are ever changed; Overflow and Saturation are stored but
// not computed.
package cpu
