package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/td12dk/td12dk/internal/diag"
)

// Operation is a single assembly-language instruction. Parse fills in the
// operation from its mnemonic and raw operand text; Encode produces its
// 12-bit word once every label is known.
type Operation interface {
	Parse(mnemonic string, operands []string, sp diag.Span) error
	Encode(labels Labels) (Word, error)
}

func newOperation(mnemonic string) (Operation, bool) {
	up := strings.ToUpper(mnemonic)

	switch up {
	case "NOP", "HLT", "BNZ", "BNA", "BNP", "BNN":
		return &noOperandOp{}, true
	case "LOD", "STR", "POP", "PSH":
		return &registerOp{}, true
	case "LIU", "LDI", "LIL":
		return &immediateOp{}, true
	case "LSH", "RSH", "INC", "DEC":
		return &shiftOp{}, true
	case "AND", "OR", "SUB", "XOR", "NOR", "NAD", "ADD":
		return &aluOp{}, true
	default:
		return nil, false
	}
}

func invalidRegister(op, reg string, sp diag.Span) error {
	return diag.New(diag.Compiler, "InvalidRegister",
		fmt.Sprintf("%s: not a register: %q", op, reg), sp)
}

func argCountMismatch(op string, want, got int, sp diag.Span) error {
	return diag.New(diag.Compiler, "ArgumentCountMismatch",
		fmt.Sprintf("%s: expected %d operand(s), got %d", op, want, got), sp)
}

// noOperandOp covers NOP/HLT/BNZ/BNA/BNP/BNN: fields (0,0,0,k).
type noOperandOp struct {
	mnemonic string
	k        Word
}

var noOperandKind = map[string]Word{
	"NOP": 0, "HLT": 1, "BNZ": 2, "BNA": 3, "BNP": 4, "BNN": 5,
}

func (o *noOperandOp) Parse(mnemonic string, operands []string, sp diag.Span) error {
	if len(operands) != 0 {
		return argCountMismatch(mnemonic, 0, len(operands), sp)
	}

	o.mnemonic = strings.ToUpper(mnemonic)
	o.k = noOperandKind[o.mnemonic]

	return nil
}

func (o *noOperandOp) Encode(Labels) (Word, error) {
	return o.k, nil
}

// registerOp covers LOD/STR/POP/PSH: fields (0,0,{4,5,6,7}, reg).
type registerOp struct {
	mnemonic string
	reg      byte
}

var registerOpField = map[string]Word{
	"LOD": 4, "STR": 5, "POP": 6, "PSH": 7,
}

func (o *registerOp) Parse(mnemonic string, operands []string, sp diag.Span) error {
	if len(operands) != 1 {
		return argCountMismatch(mnemonic, 1, len(operands), sp)
	}

	reg, ok := registerIndex(operands[0])
	if !ok {
		return invalidRegister(mnemonic, operands[0], sp)
	}

	o.mnemonic = strings.ToUpper(mnemonic)
	o.reg = reg

	return nil
}

func (o *registerOp) Encode(Labels) (Word, error) {
	field := registerOpField[o.mnemonic]
	return field<<3 | Word(o.reg), nil
}

// immediateOp covers LIU/LDI/LIL: fields (0,{1,2,3}, imm6 high, imm6 low). An
// operand of the form `:label` is deferred until the label's address is
// known, substituting the upper six bits on LIU and the lower six on LDI
// and LIL.
type immediateOp struct {
	mnemonic string
	value    int
	label    string
	sp       diag.Span
}

var immediateOpField = map[string]Word{
	"LIU": 1, "LDI": 2, "LIL": 3,
}

func (o *immediateOp) Parse(mnemonic string, operands []string, sp diag.Span) error {
	if len(operands) != 1 {
		return argCountMismatch(mnemonic, 1, len(operands), sp)
	}

	o.mnemonic = strings.ToUpper(mnemonic)
	o.sp = sp

	oper := strings.TrimSpace(operands[0])
	if strings.HasPrefix(oper, ":") {
		o.label = oper[1:]
		return nil
	}

	v, err := parseImmediate(oper)
	if err != nil {
		return diag.New(diag.Compiler, "InvalidInstruction",
			fmt.Sprintf("%s: invalid immediate: %q", mnemonic, oper), sp).WithCause(err)
	}

	o.value = v

	return nil
}

func (o *immediateOp) Encode(labels Labels) (Word, error) {
	field := immediateOpField[o.mnemonic]

	v := o.value

	if o.label != "" {
		addr, ok := labels[o.label]
		if !ok {
			return 0, diag.New(diag.Compiler, "UnresolvedReference",
				fmt.Sprintf("undefined label: %q", o.label), o.sp)
		}

		v = int(addr)
	}

	var imm6 int

	if o.mnemonic == "LIU" && o.label != "" {
		imm6 = (v >> 6) & 0x3F
	} else {
		imm6 = v & 0x3F
	}

	return field<<6 | Word(imm6), nil
}

// shiftOp covers LSH/RSH/INC/DEC: fields (0,{4,5,6,7}, reg_a, reg_d). Operand
// order is destination then source, matching the rest of the register ISA.
type shiftOp struct {
	mnemonic string
	dst, src byte
}

var shiftOpField = map[string]Word{
	"LSH": 4, "RSH": 5, "INC": 6, "DEC": 7,
}

func (o *shiftOp) Parse(mnemonic string, operands []string, sp diag.Span) error {
	if len(operands) != 2 {
		return argCountMismatch(mnemonic, 2, len(operands), sp)
	}

	dst, ok := registerIndex(operands[0])
	if !ok {
		return invalidRegister(mnemonic, operands[0], sp)
	}

	src, ok := registerIndex(operands[1])
	if !ok {
		return invalidRegister(mnemonic, operands[1], sp)
	}

	o.mnemonic = strings.ToUpper(mnemonic)
	o.dst = dst
	o.src = src

	return nil
}

func (o *shiftOp) Encode(Labels) (Word, error) {
	field := shiftOpField[o.mnemonic]
	return field<<6 | Word(o.src)<<3 | Word(o.dst), nil
}

// aluOp covers AND/OR/SUB/XOR/NOR/NAD/ADD: fields ({1..7}, reg_b, reg_a,
// reg_d). Operand order is destination, operand-a, operand-b.
type aluOp struct {
	mnemonic string
	dst, a, b byte
}

var aluOpField = map[string]Word{
	"AND": 1, "OR": 2, "SUB": 3, "XOR": 4, "NOR": 5, "NAD": 6, "ADD": 7,
}

func (o *aluOp) Parse(mnemonic string, operands []string, sp diag.Span) error {
	if len(operands) != 3 {
		return argCountMismatch(mnemonic, 3, len(operands), sp)
	}

	dst, ok := registerIndex(operands[0])
	if !ok {
		return invalidRegister(mnemonic, operands[0], sp)
	}

	a, ok := registerIndex(operands[1])
	if !ok {
		return invalidRegister(mnemonic, operands[1], sp)
	}

	b, ok := registerIndex(operands[2])
	if !ok {
		return invalidRegister(mnemonic, operands[2], sp)
	}

	o.mnemonic = strings.ToUpper(mnemonic)
	o.dst, o.a, o.b = dst, a, b

	return nil
}

func (o *aluOp) Encode(Labels) (Word, error) {
	field := aluOpField[o.mnemonic]
	return field<<9 | Word(o.b)<<6 | Word(o.a)<<3 | Word(o.dst), nil
}

// parseImmediate parses a bare immediate literal: decimal, 0x, 0b, or 0o.
func parseImmediate(text string) (int, error) {
	neg := false

	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}

	base := 10

	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		base = 16
		text = text[2:]
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		base = 2
		text = text[2:]
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		base = 8
		text = text[2:]
	}

	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, err
	}

	if neg {
		v = -v
	}

	return int(v), nil
}
