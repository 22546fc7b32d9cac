// Package cpu implements the MOS 6502 instruction-set architecture: the
// decode-execute loop, addressing-mode resolution, status-flag
// arithmetic, and stack/interrupt discipline. It depends only on the
// Bank interface for memory, so any backing store (internal/memory, or a
// test fake) can drive it.
package cpu

import "math"

const (
	// stackPage is the fixed high byte the stack pointer is combined
	// with to form an effective stack address; the stack always lives
	// in 0x0100-0x01FF.
	stackPage = uint16(0x0100)

	// resetCycles is the documented cost of a reset sequence.
	resetCycles = uint64(7)
)

// CPU is the 6502 register file plus the cycle counter. It holds no
// memory of its own; all reads/writes go through bank.
type CPU struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	P  Flags

	Cycles uint64

	bank Bank

	halted     bool
	haltErr    error
	haltOpcode uint8
}

// New returns a CPU wired to bank. Callers must call PowerOn or Reset
// before Step/Run; registers are otherwise zero-valued.
func New(bank Bank) *CPU {
	return &CPU{bank: bank}
}

// PowerOn brings the CPU up in the deterministic all-zero state the data
// model specifies (A/X/Y cleared) and then runs the reset sequence,
// which sets SP, P, PC, and primes the cycle counter.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.Cycles = 0
	c.halted = false
	c.haltErr = nil
	c.haltOpcode = 0
	c.Reset()
}

// Reset performs the reset sequence: SP is set to 0xFD, P is cleared to
// just the reserved bit, PC is loaded from the reset vector, and the
// reset's documented 7-cycle cost is added to the running total. Unlike
// PowerOn, a mid-run Reset does not clear A/X/Y or the accumulated cycle
// count, so cycle accounting stays continuous across a reset that isn't
// also a fresh power-on.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.P = newFlags(0)
	c.PC = c.bank.ReadU16(resetVector)
	c.addCycles(resetCycles)
}

// Halted reports whether the CPU has stopped due to an unrecoverable
// decode or execution error. Once halted, Step keeps returning the same
// error without touching PC/memory further.
func (c *CPU) Halted() bool {
	return c.halted
}

// HaltOpcode returns the opcode byte that caused the halt, valid only
// once Halted reports true.
func (c *CPU) HaltOpcode() uint8 {
	return c.haltOpcode
}

// addCycles adds n to the running cycle count, saturating at the max
// uint64 value rather than wrapping.
func (c *CPU) addCycles(n uint64) {
	if c.Cycles > math.MaxUint64-n {
		c.Cycles = math.MaxUint64
		return
	}
	c.Cycles += n
}

// Step decodes and executes a single instruction at PC, returning the
// number of cycles it consumed. A DecodeError or UnsupportedMode halts
// the CPU; subsequent Step calls return the cached error without side
// effects.
func (c *CPU) Step() (uint8, error) {
	if c.halted {
		return 0, c.haltErr
	}

	opcode := c.bank.ReadU8(c.PC)
	operandAddr := c.PC + 1

	instr := Lookup(opcode)
	if instr == nil {
		err := DecodeError{Opcode: opcode, PC: c.PC}
		c.halted = true
		c.haltErr = err
		c.haltOpcode = opcode
		return 0, err
	}

	c.PC += instr.Mode.ByteLength()

	res := resolve(instr.Mode, c.bank, operandAddr, c.X, c.Y, c.PC)

	extra, err := c.dispatch(instr, res)
	if err != nil {
		c.halted = true
		c.haltErr = err
		c.haltOpcode = opcode
		return 0, err
	}

	total := instr.BaseCycles + extra
	c.addCycles(uint64(total))
	return total, nil
}

// Run executes instructions until the cycle budget is exhausted or an
// instruction fails to decode/execute. The budget is decremented by each
// instruction's actual cost, saturating at zero rather than going
// negative, matching the "stop between instructions" contract: a single
// instruction may cost more than the remaining budget and still
// completes in full before the loop exits.
func (c *CPU) Run(budget uint64) error {
	for budget > 0 {
		used, err := c.Step()
		if err != nil {
			return err
		}
		if uint64(used) >= budget {
			budget = 0
		} else {
			budget -= uint64(used)
		}
	}
	return nil
}

func (c *CPU) zeroCheck(v uint8) {
	c.P = c.P.with(FlagZero, v == 0)
}

func (c *CPU) negativeCheck(v uint8) {
	c.P = c.P.with(FlagNegative, v&0x80 != 0)
}

func (c *CPU) loadRegister(reg *uint8, v uint8) {
	*reg = v
	c.zeroCheck(v)
	c.negativeCheck(v)
}

// operand returns the byte the current addressing mode resolved to: the
// accumulator for ACC mode, otherwise whatever is at res.Addr (which is
// the immediate byte itself for IMM mode).
func (c *CPU) operand(res Resolved) uint8 {
	if res.Accumulator {
		return c.A
	}
	return c.bank.ReadU8(res.Addr)
}

func (c *CPU) writeResult(res Resolved, v uint8) {
	if res.Accumulator {
		c.A = v
		return
	}
	c.bank.WriteU8(res.Addr, v)
}

// readPagePenalty returns 1 if mnemonic is one of the documented
// read-type instructions and the resolved address crossed a page
// boundary.
func readPagePenalty(m Mnemonic, res Resolved) uint8 {
	if res.PageCrossed && pageCrossPenaltyMnemonics[m] {
		return 1
	}
	return 0
}
