package cpu

// Bank is the memory contract the core requires from its collaborator.
// internal/memory.Memory satisfies this directly; tests may substitute
// smaller fakes.
type Bank interface {
	ReadU8(addr uint16) uint8
	ReadU16(addr uint16) uint16
	WriteU8(addr uint16, v uint8)
}

// Resolved is the result of applying an addressing mode: either an
// effective memory address (Inline/Accumulator both false) or a signal
// that the operand is immediate (Inline) or the accumulator itself
// (Accumulator). Implied mode yields the zero value.
type Resolved struct {
	Addr        uint16
	Inline      bool // immediate: value lives at Addr itself (no indirection)
	Accumulator bool // operand is the accumulator register, not memory
	PageCrossed bool // indexed mode crossed a page boundary computing Addr
}

// resolve implements the addressing-mode table: given the address of the
// operand byte(s) immediately following the opcode, compute the
// effective address (or signal an inline/accumulator operand). pcAfter
// is the program counter value after the instruction's bytes have
// already been consumed, used only by Relative mode.
func resolve(mode AddressingMode, bank Bank, operand uint16, x, y uint8, pcAfter uint16) Resolved {
	switch mode {
	case Implied:
		return Resolved{}
	case Accumulator:
		return Resolved{Accumulator: true}
	case Immediate:
		return Resolved{Addr: operand, Inline: true}
	case ZeroPage:
		return Resolved{Addr: uint16(bank.ReadU8(operand))}
	case ZeroPageX:
		return Resolved{Addr: uint16(uint8(bank.ReadU8(operand) + x))}
	case ZeroPageY:
		return Resolved{Addr: uint16(uint8(bank.ReadU8(operand) + y))}
	case Relative:
		off := int8(bank.ReadU8(operand))
		target := uint16(int32(pcAfter) + int32(off))
		return Resolved{
			Addr:        target,
			PageCrossed: isPageCrossed(pcAfter, target),
		}
	case Absolute:
		return Resolved{Addr: bank.ReadU16(operand)}
	case AbsoluteX:
		base := bank.ReadU16(operand)
		final := base + uint16(x)
		return Resolved{Addr: final, PageCrossed: isPageCrossed(base, final)}
	case AbsoluteY:
		base := bank.ReadU16(operand)
		final := base + uint16(y)
		return Resolved{Addr: final, PageCrossed: isPageCrossed(base, final)}
	case Indirect:
		ptr := bank.ReadU16(operand)
		return Resolved{Addr: readU16PageWrapped(bank, ptr)}
	case IndirectX:
		zp := uint16(uint8(bank.ReadU8(operand) + x))
		return Resolved{Addr: readU16ZPWrapped(bank, zp)}
	case IndirectY:
		zp := uint16(bank.ReadU8(operand))
		base := readU16ZPWrapped(bank, zp)
		final := base + uint16(y)
		return Resolved{Addr: final, PageCrossed: isPageCrossed(base, final)}
	default:
		return Resolved{}
	}
}

// readU16ZPWrapped reads a little-endian 16-bit pointer out of the zero
// page starting at zp, wrapping the high-byte fetch back to 0x00 instead
// of spilling into page 1 (IndirectX/IndirectY pointers always live
// entirely within the zero page).
func readU16ZPWrapped(bank Bank, zp uint16) uint16 {
	lo := bank.ReadU8(zp)
	hi := bank.ReadU8(uint16(uint8(zp + 1)))
	return uint16(lo) | uint16(hi)<<8
}

// readU16PageWrapped reproduces a well-known NMOS 6502 hardware quirk:
// JMP ($xxFF) never crosses into the next page to fetch its high byte.
// The CPU's internal pointer-increment logic wraps within the same page,
// so the high byte comes from $xx00 instead of $(xx+1)00.
func readU16PageWrapped(bank Bank, ptr uint16) uint16 {
	lo := bank.ReadU8(ptr)
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr+1))
	hi := bank.ReadU8(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

// isPageCrossed reports whether cur and target lie in different 256-byte
// pages; shared by branch and indexed-mode cycle accounting.
func isPageCrossed(cur, target uint16) bool {
	return (cur >> 8) != (target >> 8)
}
