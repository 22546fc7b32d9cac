// Package disassemble renders a human-readable line for the instruction
// at a given program counter. It is a pure reader: it never mutates the
// memory it inspects and knows nothing about CPU state; operands are
// rendered from the instruction bytes alone, so no effective address or
// index register value appears in a line.
package disassemble

import (
	"fmt"

	"github.com/bazzargh/mos6502/internal/cpu"
)

// Bank is the minimal read-only memory contract the disassembler needs.
type Bank interface {
	ReadU8(addr uint16) uint8
}

// Line is one disassembled instruction: enough to reconstruct what it
// did without prescribing an exact rendering for every consumer.
type Line struct {
	PC       uint16
	Bytes    []uint8
	Mnemonic string
	Operand  string
	Len      uint16 // bytes consumed, including the opcode
}

// String renders Line in a column layout: address, raw bytes, mnemonic
// and operand, left-padded so a run of lines stays aligned.
func (l Line) String() string {
	raw := ""
	for _, b := range l.Bytes {
		raw += fmt.Sprintf("%02X ", b)
	}
	return fmt.Sprintf("%04X  %-9s%s %s", l.PC, raw, l.Mnemonic, l.Operand)
}

// Step disassembles the instruction at pc and returns it along with the
// number of bytes the PC should advance to reach the next instruction.
// An undefined opcode renders as "???" with a length of 1 so a caller
// scanning a region of memory that contains data, not code, can still
// make forward progress.
func Step(pc uint16, bank Bank) Line {
	opcode := bank.ReadU8(pc)
	instr := cpu.Lookup(opcode)
	if instr == nil {
		return Line{PC: pc, Bytes: []uint8{opcode}, Mnemonic: "???", Len: 1}
	}

	length := instr.Mode.ByteLength()
	bytes := make([]uint8, length)
	for i := uint16(0); i < length; i++ {
		bytes[i] = bank.ReadU8(pc + i)
	}

	operand := formatOperand(instr, bytes, pc)
	return Line{
		PC:       pc,
		Bytes:    bytes,
		Mnemonic: instr.Mnemonic.String(),
		Operand:  operand,
		Len:      length,
	}
}

func formatOperand(instr *cpu.Instruction, bytes []uint8, pc uint16) string {
	switch instr.Mode {
	case cpu.Implied:
		return ""
	case cpu.Accumulator:
		return "A"
	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", bytes[1])
	case cpu.ZeroPage:
		return fmt.Sprintf("$%02X", bytes[1])
	case cpu.ZeroPageX:
		return fmt.Sprintf("$%02X,X", bytes[1])
	case cpu.ZeroPageY:
		return fmt.Sprintf("$%02X,Y", bytes[1])
	case cpu.Relative:
		target := pc + 2 + uint16(int16(int8(bytes[1])))
		return fmt.Sprintf("$%02X ($%04X)", bytes[1], target)
	case cpu.Absolute:
		return fmt.Sprintf("$%02X%02X", bytes[2], bytes[1])
	case cpu.AbsoluteX:
		return fmt.Sprintf("$%02X%02X,X", bytes[2], bytes[1])
	case cpu.AbsoluteY:
		return fmt.Sprintf("$%02X%02X,Y", bytes[2], bytes[1])
	case cpu.Indirect:
		return fmt.Sprintf("($%02X%02X)", bytes[2], bytes[1])
	case cpu.IndirectX:
		return fmt.Sprintf("($%02X,X)", bytes[1])
	case cpu.IndirectY:
		return fmt.Sprintf("($%02X),Y", bytes[1])
	default:
		return ""
	}
}
