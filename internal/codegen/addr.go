package codegen

// loadImmediate loads a 12-bit value into MP: a single `ldi` for values
// that fit a 6-bit field, or an `liu`/`lil` pair otherwise. If label is
// non-empty, value is ignored and a deferred `:label` operand is emitted on
// both instructions instead - the assembler substitutes the upper and lower
// six bits of the resolved address respectively.
func (g *Generator) loadImmediate(value int, label string) error {
	if label != "" {
		g.emit("liu :%s", label)
		g.emit("lil :%s", label)

		return nil
	}

	v := value & 0xFFF

	if v < 64 {
		g.emit("ldi %d", v)
		return nil
	}

	g.emit("liu %d", (v>>6)&0x3F)
	g.emit("lil %d", v&0x3F)

	return nil
}

// loadAddressOffset computes a local's address into MP: load the (possibly
// negative, 12-bit two's-complement) frame offset, then add the stack
// pointer.
func (g *Generator) loadAddressOffset(offset int) error {
	if err := g.loadImmediate(offset, ""); err != nil {
		return err
	}

	g.emit("add MP, SP, MP")

	return nil
}
