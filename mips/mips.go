// Package mips is the downstream assembly value and pretty-printer:
// codegen builds a Program value and this package renders it to MIPS
// assembly text (spec.md S4.4, S6 "Output format"). Grounded on
// original_source/src/codegen/mips/mod.rs's use of the astrolabe crate's
// Program/DataSection/TextSection/Instruction value shapes, translated
// into a standalone Go package since compass-go carries no equivalent
// external assembly-AST dependency.
package mips

import (
	"fmt"
	"strings"
)

// DataKind distinguishes an interned, content-deduplicated string entry
// from an uninitialized, never-deduplicated scratch buffer (spec.md S4.5).
type DataKind int

const (
	Asciiz DataKind = iota
	SpaceBuffer
)

// DataEntry is one line of the .data section.
type DataEntry struct {
	Label string
	Kind  DataKind
	Value string // asciiz string contents (unescaped)
	Size  uint32 // SpaceBuffer byte count
}

// DataSection holds every interned string and scratch buffer, in
// insertion order.
type DataSection struct {
	Entries []DataEntry
}

// Add appends entry and returns its index.
func (d *DataSection) Add(entry DataEntry) int {
	d.Entries = append(d.Entries, entry)
	return len(d.Entries) - 1
}

// FindAsciiz returns the label of an existing Asciiz entry whose Value
// exactly matches s, used by codegen's string-interning rule (spec.md
// S4.5: "scan existing .data entries ... reuse its label").
func (d *DataSection) FindAsciiz(s string) (string, bool) {
	for _, e := range d.Entries {
		if e.Kind == Asciiz && e.Value == s {
			return e.Label, true
		}
	}
	return "", false
}

// Instruction is a single MIPS mnemonic plus its already-formatted
// operand strings (registers like "$t0", immediates like "13", labels).
type Instruction struct {
	Mnemonic string
	Args     []string
}

func (i Instruction) String() string {
	if len(i.Args) == 0 {
		return i.Mnemonic
	}
	return fmt.Sprintf("%s %s", i.Mnemonic, strings.Join(i.Args, ", "))
}

// TextItem is either a label definition or an instruction -- the closed
// sum the original's astrolabe::ast::Statement enum modeled as
// Instruction | Label.
type TextItem struct {
	IsLabel     bool
	Label       string
	Instruction Instruction
}

func Lbl(name string) TextItem {
	return TextItem{IsLabel: true, Label: name}
}

func Instr(mnemonic string, args ...string) TextItem {
	return TextItem{Instruction: Instruction{Mnemonic: mnemonic, Args: args}}
}

// TextSection is the ordered sequence of labels and instructions that
// make up the .text section, function bodies first and the entrypoint
// label last (spec.md S4.4: "function bodies are emitted before the
// main: label").
type TextSection struct {
	Entrypoint string
	Items      []TextItem
}

func (t *TextSection) Add(item TextItem) {
	t.Items = append(t.Items, item)
}

// Program is the complete generated output: a .data section followed by
// a .text section.
type Program struct {
	Data DataSection
	Text TextSection
}

// String renders the program as MIPS assembly text (spec.md S6).
func (p *Program) String() string {
	var b strings.Builder

	if len(p.Data.Entries) > 0 {
		b.WriteString(".data\n")
		for _, e := range p.Data.Entries {
			switch e.Kind {
			case Asciiz:
				fmt.Fprintf(&b, "%s: .asciiz %q\n", e.Label, e.Value)
			case SpaceBuffer:
				fmt.Fprintf(&b, "%s: .space %d\n", e.Label, e.Size)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(".text\n")
	for _, item := range p.Text.Items {
		if item.IsLabel {
			fmt.Fprintf(&b, "%s:\n", item.Label)
			continue
		}
		fmt.Fprintf(&b, "\t%s\n", item.Instruction.String())
	}

	return b.String()
}
