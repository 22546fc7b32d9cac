package cpu

// push writes val to the current stack address and decrements SP,
// wrapping within the 0x00-0xFF range (the effective address always
// stays within 0x0100-0x01FF since it's formed by OR-ing SP into the
// fixed stack page).
func (c *CPU) push(val uint8) {
	c.bank.WriteU8(stackPage|uint16(c.SP), val)
	c.SP--
}

// pop increments SP and returns the byte now at the top of stack.
func (c *CPU) pop() uint8 {
	c.SP++
	return c.bank.ReadU8(stackPage | uint16(c.SP))
}

// pushU16 pushes v high-byte-first, matching JSR/BRK's frame layout.
func (c *CPU) pushU16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

// popU16 pops a value pushed with pushU16 (low byte popped first).
func (c *CPU) popU16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(lo) | uint16(hi)<<8
}

// jsr pushes the return address (the address of JSR's own last byte)
// and jumps to target.
func (c *CPU) jsr(target uint16) {
	c.pushU16(c.PC - 1)
	c.PC = target
}

// rts pops the return address pushed by jsr and resumes just past it.
func (c *CPU) rts() {
	c.PC = c.popU16() + 1
}

// brk implements the software-interrupt frame: push PC+1 (skipping
// BRK's padding byte), push P with B and the reserved bit forced on,
// set I, and load PC from the IRQ vector.
func (c *CPU) brk() {
	c.pushU16(c.PC + 1)
	c.push((c.P | FlagBreak | FlagReserved).Byte())
	c.P = c.P.set(FlagInterrupt)
	c.PC = c.bank.ReadU16(irqVector)
}

// rti pops P (ignoring the pulled B and reserved bits, which stay as the
// CPU's own current copies) and then pops PC directly, unlike RTS which
// adds one.
func (c *CPU) rti() {
	pulled := Flags(c.pop())
	keep := c.P & (FlagBreak | FlagReserved)
	c.P = (pulled &^ (FlagBreak | FlagReserved)) | keep | FlagReserved
	c.PC = c.popU16()
}

// pha/pla/php/plp implement the stack instructions. PHP always observes
// B and the reserved bit set; PLP (like RTI) ignores the pulled B and
// reserved bits and preserves the CPU's current copies.
func (c *CPU) pha() {
	c.push(c.A)
}

func (c *CPU) pla() {
	c.loadRegister(&c.A, c.pop())
}

func (c *CPU) php() {
	c.push((c.P | FlagBreak | FlagReserved).Byte())
}

func (c *CPU) plp() {
	pulled := Flags(c.pop())
	keep := c.P & (FlagBreak | FlagReserved)
	c.P = (pulled &^ (FlagBreak | FlagReserved)) | keep | FlagReserved
}
