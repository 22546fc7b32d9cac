package disassemble

import (
	"testing"

	"github.com/bazzargh/mos6502/internal/memory"
)

func TestStepImmediate(t *testing.T) {
	m := memory.New()
	m.SeekAppend(0x0600)
	m.AppendU8(0xA9) // LDA #$42
	m.AppendU8(0x42)

	line := Step(0x0600, m)
	if line.Len != 2 {
		t.Errorf("Len = %d, want 2", line.Len)
	}
	if line.Mnemonic != "LDA" {
		t.Errorf("Mnemonic = %q, want LDA", line.Mnemonic)
	}
	if line.Operand != "#$42" {
		t.Errorf("Operand = %q, want #$42", line.Operand)
	}
}

func TestStepAbsolute(t *testing.T) {
	m := memory.New()
	m.SeekAppend(0x0600)
	m.AppendU8(0x4C) // JMP $C000
	m.AppendU16(0xC000)

	line := Step(0x0600, m)
	if line.Len != 3 {
		t.Errorf("Len = %d, want 3", line.Len)
	}
	if line.Operand != "$C000" {
		t.Errorf("Operand = %q, want $C000", line.Operand)
	}
}

func TestStepRelativeShowsComputedTarget(t *testing.T) {
	m := memory.New()
	m.SeekAppend(0x0600)
	m.AppendU8(0xF0) // BEQ +2
	m.AppendU8(0x02)

	line := Step(0x0600, m)
	if line.Operand != "$02 ($0604)" {
		t.Errorf("Operand = %q, want $02 ($0604)", line.Operand)
	}
}

func TestStepUndefinedOpcode(t *testing.T) {
	m := memory.New()
	m.WriteU8(0x0600, 0x02)

	line := Step(0x0600, m)
	if line.Mnemonic != "???" {
		t.Errorf("Mnemonic = %q, want ???", line.Mnemonic)
	}
	if line.Len != 1 {
		t.Errorf("Len = %d, want 1", line.Len)
	}
}

func TestLineStringIncludesAddressAndBytes(t *testing.T) {
	m := memory.New()
	m.SeekAppend(0x0600)
	m.AppendU8(0xA9)
	m.AppendU8(0x42)

	got := Step(0x0600, m).String()
	want := "0600  A9 42    LDA #$42"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
