package cpu

// dispatch executes instr against the already-resolved operand res and
// returns any cycle penalty beyond the table's base cost (page-crossing
// reads and taken branches). Handlers are grouped by mnemonic family and
// never see how the address was computed, only the resolved operand.
func (c *CPU) dispatch(instr *Instruction, res Resolved) (uint8, error) {
	switch instr.Mnemonic {
	case LDA:
		c.loadRegister(&c.A, c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case LDX:
		c.loadRegister(&c.X, c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case LDY:
		c.loadRegister(&c.Y, c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil

	case STA:
		c.writeResult(res, c.A)
		return 0, nil
	case STX:
		c.writeResult(res, c.X)
		return 0, nil
	case STY:
		c.writeResult(res, c.Y)
		return 0, nil

	case TAX:
		c.loadRegister(&c.X, c.A)
		return 0, nil
	case TAY:
		c.loadRegister(&c.Y, c.A)
		return 0, nil
	case TXA:
		c.loadRegister(&c.A, c.X)
		return 0, nil
	case TYA:
		c.loadRegister(&c.A, c.Y)
		return 0, nil
	case TSX:
		c.loadRegister(&c.X, c.SP)
		return 0, nil
	case TXS:
		c.SP = c.X // TXS never touches flags.
		return 0, nil

	case CLC:
		c.P = c.P.clear(FlagCarry)
		return 0, nil
	case CLD:
		c.P = c.P.clear(FlagDecimal)
		return 0, nil
	case CLI:
		c.P = c.P.clear(FlagInterrupt)
		return 0, nil
	case CLV:
		c.P = c.P.clear(FlagOverflow)
		return 0, nil
	case SEC:
		c.P = c.P.set(FlagCarry)
		return 0, nil
	case SED:
		c.P = c.P.set(FlagDecimal)
		return 0, nil
	case SEI:
		c.P = c.P.set(FlagInterrupt)
		return 0, nil

	case AND:
		c.loadRegister(&c.A, c.A&c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case ORA:
		c.loadRegister(&c.A, c.A|c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case EOR:
		c.loadRegister(&c.A, c.A^c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil

	case BIT:
		val := c.operand(res)
		c.P = c.P.with(FlagZero, c.A&val == 0)
		c.negativeCheck(val)
		c.P = c.P.with(FlagOverflow, val&uint8(FlagOverflow) != 0)
		return 0, nil

	case ADC:
		c.adc(c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case SBC:
		c.sbc(c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil

	case CMP:
		c.compare(c.A, c.operand(res))
		return readPagePenalty(instr.Mnemonic, res), nil
	case CPX:
		c.compare(c.X, c.operand(res))
		return 0, nil
	case CPY:
		c.compare(c.Y, c.operand(res))
		return 0, nil

	case INC:
		v := c.operand(res) + 1
		c.writeResult(res, v)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil
	case DEC:
		v := c.operand(res) - 1
		c.writeResult(res, v)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil
	case INX:
		c.loadRegister(&c.X, c.X+1)
		return 0, nil
	case INY:
		c.loadRegister(&c.Y, c.Y+1)
		return 0, nil
	case DEX:
		c.loadRegister(&c.X, c.X-1)
		return 0, nil
	case DEY:
		c.loadRegister(&c.Y, c.Y-1)
		return 0, nil

	case ASL:
		v, carry := aslValue(c.operand(res))
		c.writeResult(res, v)
		c.P = c.P.with(FlagCarry, carry)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil
	case LSR:
		v, carry := lsrValue(c.operand(res))
		c.writeResult(res, v)
		c.P = c.P.with(FlagCarry, carry)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil
	case ROL:
		v, carry := rolValue(c.operand(res), c.P.Has(FlagCarry))
		c.writeResult(res, v)
		c.P = c.P.with(FlagCarry, carry)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil
	case ROR:
		v, carry := rorValue(c.operand(res), c.P.Has(FlagCarry))
		c.writeResult(res, v)
		c.P = c.P.with(FlagCarry, carry)
		c.zeroCheck(v)
		c.negativeCheck(v)
		return 0, nil

	case JMP:
		c.PC = res.Addr
		return 0, nil
	case JSR:
		c.jsr(res.Addr)
		return 0, nil
	case RTS:
		c.rts()
		return 0, nil
	case BRK:
		c.brk()
		return 0, nil
	case RTI:
		c.rti()
		return 0, nil

	case PHA:
		c.pha()
		return 0, nil
	case PHP:
		c.php()
		return 0, nil
	case PLA:
		c.pla()
		return 0, nil
	case PLP:
		c.plp()
		return 0, nil

	case BCC:
		return c.branch(!c.P.Has(FlagCarry), res), nil
	case BCS:
		return c.branch(c.P.Has(FlagCarry), res), nil
	case BEQ:
		return c.branch(c.P.Has(FlagZero), res), nil
	case BNE:
		return c.branch(!c.P.Has(FlagZero), res), nil
	case BPL:
		return c.branch(!c.P.Has(FlagNegative), res), nil
	case BMI:
		return c.branch(c.P.Has(FlagNegative), res), nil
	case BVC:
		return c.branch(!c.P.Has(FlagOverflow), res), nil
	case BVS:
		return c.branch(c.P.Has(FlagOverflow), res), nil

	case NOP:
		return 0, nil
	}
	return 0, UnsupportedMode{Mnemonic: instr.Mnemonic.String(), Mode: instr.Mode}
}

// branch applies a conditional branch: if taken, PC moves to the
// resolved target and the cycle penalty is 1 (same page) or 2 (page
// crossed); if not, PC is already correct (it was advanced past the
// 2-byte instruction before dispatch ran) and no penalty applies.
func (c *CPU) branch(taken bool, res Resolved) uint8 {
	if !taken {
		return 0
	}
	c.PC = res.Addr
	if res.PageCrossed {
		return 2
	}
	return 1
}
