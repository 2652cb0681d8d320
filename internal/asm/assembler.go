package asm

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/td12dk/td12dk/internal/diag"
)

// romSize is the number of addressable ROM words, [0x000, 0x700).
const romSize = 0x700

// Labels maps a label to its resolved ROM address.
type Labels map[string]Word

// Program is the result of a successful assembly: the packed word stream
// for ROM addresses [0x000, 0x700) and the label table.
type Program struct {
	Words  []Word
	Labels Labels
}

// LabelListing renders the label table as one `0xADDR, name` line per
// label, sorted by name for deterministic output.
func (p *Program) LabelListing() string {
	names := make([]string, 0, len(p.Labels))
	for name := range p.Labels {
		names = append(names, name)
	}

	sort.Strings(names)

	var b strings.Builder

	for _, name := range names {
		fmt.Fprintf(&b, "0x%03X, %s\n", p.Labels[name], name)
	}

	return b.String()
}

type item struct {
	addr Word
	op   Operation
}

// assembler carries the mutable state of one assembly run: the label table,
// the bidirectional address<->source mapping built during layout, and the
// errors accumulated so far. Per the propagation policy, every error found
// during a run is recorded as it is found and only the last is returned,
// and no partial Program is produced when any error occurred.
type assembler struct {
	file   string
	labels Labels
	items  []item
	errs   []error
}

var (
	labelLine     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):\s*(.*)$`)
	locationLine  = regexp.MustCompile(`^\.(.+)$`)
	mnemonicToken = regexp.MustCompile(`^(\S+)\s*(.*)$`)
)

// Assemble runs both passes of the assembler over source text and returns
// the packed program, or the last diagnostic encountered if any line
// failed to parse or link.
func Assemble(file, src string) (*Program, error) {
	a := &assembler{file: file, labels: make(Labels)}

	a.layout(src)

	if len(a.errs) > 0 {
		return nil, a.errs[len(a.errs)-1]
	}

	words, err := a.link()
	if err != nil {
		return nil, err
	}

	return &Program{Words: words, Labels: a.labels}, nil
}

func (a *assembler) span(lineNo int, line string) diag.Span {
	return diag.Span{File: a.file, Line: lineNo, Col: 1, Length: len(line)}
}

// layout is pass one: it walks the source in order, maintaining a current
// ROM address, recording label addresses and building the bidirectional
// address<->source mapping that pass two consumes.
func (a *assembler) layout(src string) {
	var cursor Word

	lineNo := 0

	for _, raw := range strings.Split(src, "\n") {
		lineNo++

		line := raw
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sp := a.span(lineNo, raw)

		if m := locationLine.FindStringSubmatch(line); m != nil {
			addr, err := parseImmediate(m[1])
			if err != nil {
				a.errs = append(a.errs, diag.New(diag.Compiler, "UnknownDirective",
					fmt.Sprintf("invalid memory-location directive: %q", line), sp).WithCause(err))

				continue
			}

			cursor = Word(addr) & wordMask

			continue
		}

		if m := labelLine.FindStringSubmatch(line); m != nil {
			name, rest := m[1], strings.TrimSpace(m[2])

			if _, dup := a.labels[name]; dup {
				a.errs = append(a.errs, diag.New(diag.Compiler, "LabelRedeclared",
					fmt.Sprintf("label redeclared: %q", name), sp))

				continue
			}

			a.labels[name] = cursor

			if rest == "" {
				continue
			}

			line = rest
		}

		m := mnemonicToken.FindStringSubmatch(line)
		if m == nil {
			a.errs = append(a.errs, diag.New(diag.Compiler, "InvalidInstruction",
				fmt.Sprintf("unparseable line: %q", line), sp))

			continue
		}

		mnemonic := m[1]

		var operands []string
		if rest := strings.TrimSpace(m[2]); rest != "" {
			for _, o := range strings.Split(rest, ",") {
				operands = append(operands, strings.TrimSpace(o))
			}
		}

		op, ok := newOperation(mnemonic)
		if !ok {
			a.errs = append(a.errs, diag.New(diag.Compiler, "InvalidInstruction",
				fmt.Sprintf("unknown mnemonic: %q", mnemonic), sp))

			continue
		}

		if err := op.Parse(mnemonic, operands, sp); err != nil {
			a.errs = append(a.errs, err)
			continue
		}

		a.items = append(a.items, item{addr: cursor, op: op})
		cursor = (cursor + 1) & wordMask
	}
}

// link is pass two: for every ROM address, emit the mapped instruction's
// word or a NOP if the source never produced anything at that address,
// resolving any deferred `:label` immediates against the label table built
// during layout.
func (a *assembler) link() ([]Word, error) {
	byAddr := make(map[Word]Operation, len(a.items))
	for _, it := range a.items {
		byAddr[it.addr] = it.op
	}

	words := make([]Word, romSize)

	var errs []error

	for addr := Word(0); addr < romSize; addr++ {
		op, ok := byAddr[addr]
		if !ok {
			words[addr] = 0 // NOP

			continue
		}

		w, err := op.Encode(a.labels)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		words[addr] = w & wordMask
	}

	if len(errs) > 0 {
		return nil, errs[len(errs)-1]
	}

	return words, nil
}
