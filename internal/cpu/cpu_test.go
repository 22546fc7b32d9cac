package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/bazzargh/mos6502/internal/memory"
)

const programStart = uint16(0x0600)

// newTestCPU returns a CPU wired to a fresh Memory with the reset vector
// pointed at programStart, already powered on.
func newTestCPU(t *testing.T) (*CPU, *memory.Memory) {
	t.Helper()
	m := memory.New()
	m.WriteU16(memory.VectorReset, programStart)
	c := New(m)
	c.PowerOn()
	return c, m
}

func TestPowerOnZeroesRegisters(t *testing.T) {
	c, _ := newTestCPU(t)
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("PowerOn registers = %s, want A/X/Y all zero", spew.Sdump(c))
	}
	if c.SP != 0xFD {
		t.Errorf("SP after PowerOn = 0x%02X, want 0xFD", c.SP)
	}
	if !c.P.Has(FlagReserved) {
		t.Error("reserved flag not set after PowerOn")
	}
	if c.PC != programStart {
		t.Errorf("PC after PowerOn = 0x%04X, want 0x%04X", c.PC, programStart)
	}
	if c.Cycles != 7 {
		t.Errorf("Cycles after PowerOn = %d, want 7 (reset cost)", c.Cycles)
	}
}

func TestLDAImmediateSetsZeroAndNegative(t *testing.T) {
	cases := []struct {
		name    string
		value   uint8
		wantZ   bool
		wantN   bool
		wantA   uint8
		cycles  uint8
	}{
		{"positive", 0x42, false, false, 0x42, 2},
		{"zero", 0x00, true, false, 0x00, 2},
		{"negative", 0x80, false, true, 0x80, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, m := newTestCPU(t)
			m.SeekAppend(programStart)
			m.AppendU8(0xA9) // LDA #imm
			m.AppendU8(tc.value)

			cycles, err := c.Step()
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if cycles != tc.cycles {
				t.Errorf("cycles = %d, want %d", cycles, tc.cycles)
			}
			if c.A != tc.wantA {
				t.Errorf("A = 0x%02X, want 0x%02X", c.A, tc.wantA)
			}
			if c.P.Has(FlagZero) != tc.wantZ {
				t.Errorf("Z = %v, want %v (P=%s)", c.P.Has(FlagZero), tc.wantZ, spew.Sdump(c.P))
			}
			if c.P.Has(FlagNegative) != tc.wantN {
				t.Errorf("N = %v, want %v", c.P.Has(FlagNegative), tc.wantN)
			}
		})
	}
}

func TestADCBinaryOverflowAndCarry(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0xA9) // LDA #$50
	m.AppendU8(0x50)
	m.AppendU8(0x69) // ADC #$50
	m.AppendU8(0x50)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (LDA): %v", err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (ADC): %v", err)
	}

	if c.A != 0xA0 {
		t.Errorf("A = 0x%02X, want 0xA0", c.A)
	}
	if !c.P.Has(FlagOverflow) {
		t.Error("V not set for 0x50+0x50 signed overflow")
	}
	if c.P.Has(FlagCarry) {
		t.Error("C unexpectedly set")
	}
	if !c.P.Has(FlagNegative) {
		t.Error("N not set for result 0xA0")
	}
}

func TestADCDecimalMode(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0xF8) // SED
	m.AppendU8(0xA9) // LDA #$58
	m.AppendU8(0x58)
	m.AppendU8(0x69) // ADC #$46
	m.AppendU8(0x46)

	for i := 0; i < 3; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	// 58 + 46 = 104 in BCD arithmetic: result 04, carry set.
	if c.A != 0x04 {
		t.Errorf("A = 0x%02X, want 0x04", c.A)
	}
	if !c.P.Has(FlagCarry) {
		t.Error("C not set for BCD 58+46 (carry expected)")
	}
}

func TestSBCBinaryBorrow(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0x38) // SEC (no borrow in)
	m.AppendU8(0xA9) // LDA #$05
	m.AppendU8(0x05)
	m.AppendU8(0xE9) // SBC #$06
	m.AppendU8(0x06)

	for i := 0; i < 3; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	if c.A != 0xFF {
		t.Errorf("A = 0x%02X, want 0xFF (5-6 wraps)", c.A)
	}
	if c.P.Has(FlagCarry) {
		t.Error("C set, want clear (borrow occurred)")
	}
}

func TestBranchNotTakenCostsBaseCyclesOnly(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0xF0) // BEQ +5, Z is clear after PowerOn so not taken
	m.AppendU8(0x05)

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2 (not taken)", cycles)
	}
	if c.PC != programStart+2 {
		t.Errorf("PC = 0x%04X, want 0x%04X", c.PC, programStart+2)
	}
}

func TestBranchTakenAcrossPageCosts4Cycles(t *testing.T) {
	c, m := newTestCPU(t)
	// Place the branch at the end of a page so the target lands in the
	// next page: PC after fetch is base+2, target = base+2+offset.
	base := uint16(0x06FD)
	m.WriteU16(memory.VectorReset, base)
	c.Reset()
	m.SeekAppend(base)
	m.AppendU8(0xF0) // BEQ +5
	m.AppendU8(0x05)
	c.P = c.P.set(FlagZero)

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4 (base 2 + taken 1 + page-cross 1)", cycles)
	}
	wantPC := base + 2 + 5
	if c.PC != wantPC {
		t.Errorf("PC = 0x%04X, want 0x%04X", c.PC, wantPC)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0x6C) // JMP (ind)
	m.AppendU16(0x30FF)

	m.WriteU8(0x30FF, 0x80)
	m.WriteU8(0x3100, 0x20) // correct high byte, should be ignored
	m.WriteU8(0x3000, 0x40) // buggy wrap-around high byte fetch

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x4080 {
		t.Errorf("PC = 0x%04X, want 0x4080 (wrap-around bug)", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0x20) // JSR $0610
	m.AppendU16(0x0610)

	m.WriteU8(0x0610, 0x60) // RTS

	startSP := c.SP
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (JSR): %v", err)
	}
	if c.PC != 0x0610 {
		t.Errorf("PC after JSR = 0x%04X, want 0x0610", c.PC)
	}
	if c.SP != startSP-2 {
		t.Errorf("SP after JSR = 0x%02X, want 0x%02X", c.SP, startSP-2)
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (RTS): %v", err)
	}
	if c.PC != programStart+3 {
		t.Errorf("PC after RTS = 0x%04X, want 0x%04X", c.PC, programStart+3)
	}
	if c.SP != startSP {
		t.Errorf("SP after RTS = 0x%02X, want 0x%02X (restored)", c.SP, startSP)
	}
}

func TestBRKRTIPreservesFlagsAcrossInterruptFrame(t *testing.T) {
	c, m := newTestCPU(t)
	m.WriteU16(memory.VectorIRQ, 0x0700)
	m.SeekAppend(programStart)
	m.AppendU8(0x00) // BRK
	m.AppendU8(0x00) // padding byte

	m.WriteU8(0x0700, 0x40) // RTI

	c.P = c.P.set(FlagCarry | FlagNegative)
	pBefore := c.P

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (BRK): %v", err)
	}
	if c.PC != 0x0700 {
		t.Errorf("PC after BRK = 0x%04X, want 0x0700", c.PC)
	}
	if !c.P.Has(FlagInterrupt) {
		t.Error("I not set after BRK")
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (RTI): %v", err)
	}
	if c.PC != programStart+2 {
		t.Errorf("PC after RTI = 0x%04X, want 0x%04X", c.PC, programStart+2)
	}
	if diff := deep.Equal(c.P, pBefore); diff != nil {
		t.Errorf("P after RTI diff vs pre-BRK: %v", diff)
	}
}

func TestStepOnUndefinedOpcodeHalts(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0x02) // not a defined opcode

	_, err := c.Step()
	if err == nil {
		t.Fatal("Step on undefined opcode: got nil error")
	}
	if !c.Halted() {
		t.Error("Halted() = false after decode error")
	}
	if c.HaltOpcode() != 0x02 {
		t.Errorf("HaltOpcode() = 0x%02X, want 0x02", c.HaltOpcode())
	}

	_, err2 := c.Step()
	if err2 != err {
		t.Errorf("second Step after halt returned different error: %v vs %v", err2, err)
	}
}

func TestRunStopsAtOrAfterBudget(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	for i := 0; i < 5; i++ {
		m.AppendU8(0xEA) // NOP, 2 cycles each
	}

	if err := c.Run(5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Budget 5: NOP(2) leaves 3, NOP(2) leaves 1, NOP(2) exhausts it
	// (1 < 2 so the loop stops after this instruction completes).
	if c.PC != programStart+3*1 {
		t.Errorf("PC after Run(5) = 0x%04X, want 0x%04X", c.PC, programStart+3)
	}
}

func TestIndexedAbsolutePageCrossAddsCycle(t *testing.T) {
	c, m := newTestCPU(t)
	m.SeekAppend(programStart)
	m.AppendU8(0xA2) // LDX #$01
	m.AppendU8(0x01)
	m.AppendU8(0xBD) // LDA $06FF,X -> crosses into 0x0700
	m.AppendU16(0x06FF)
	m.WriteU8(0x0700, 0x99)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step (LDX): %v", err)
	}
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step (LDA): %v", err)
	}
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5 (base 4 + page-cross 1)", cycles)
	}
	if c.A != 0x99 {
		t.Errorf("A = 0x%02X, want 0x99", c.A)
	}
}
