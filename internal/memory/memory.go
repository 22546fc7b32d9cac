// Package memory implements the flat 64 KiB byte-addressable store that
// backs the 6502 core. It has no opinion about what's loaded into it;
// callers (the CLI, demo loaders, tests) populate it before handing it
// to the cpu package.
package memory

import (
	"fmt"
	"os"
)

// Reserved 16-bit vectors. All three are read little-endian.
const (
	VectorNMI   = uint16(0xFFFA)
	VectorReset = uint16(0xFFFC)
	VectorIRQ   = uint16(0xFFFE)

	// AddrResetVector is where PowerOn/reset fixtures point the reset
	// vector by default when nothing else has been loaded.
	AddrResetVector = uint16(0xE000)
)

// Memory is a flat 64 KiB byte array addressed by a 16-bit value. All
// arithmetic on addresses wraps modulo 2^16; Memory itself never wraps
// zero-page addressing for callers, that's the addressing resolver's job.
type Memory struct {
	ram []uint8

	// nextWrite tracks the next address the sequential-append writers
	// will use. Purely a convenience for tests and demo loaders; the
	// cpu package never calls the sequential-write methods.
	nextWrite uint16
}

// New returns a zeroed 64 KiB memory.
func New() *Memory {
	return &Memory{ram: make([]uint8, 1<<16)}
}

// ReadU8 returns the byte at addr.
func (m *Memory) ReadU8(addr uint16) uint8 {
	return m.ram[addr]
}

// ReadI8 returns the byte at addr reinterpreted as a signed value.
func (m *Memory) ReadI8(addr uint16) int8 {
	return int8(m.ram[addr])
}

// ReadU16 returns the little-endian 16-bit value starting at addr (low
// byte at addr, high byte at addr+1, both wrapping modulo 2^16).
func (m *Memory) ReadU16(addr uint16) uint16 {
	lo := uint16(m.ram[addr])
	hi := uint16(m.ram[addr+1])
	return lo | hi<<8
}

// WriteU8 stores v at addr.
func (m *Memory) WriteU8(addr uint16, v uint8) {
	m.ram[addr] = v
}

// WriteI8 stores the bit pattern of v at addr.
func (m *Memory) WriteI8(addr uint16, v int8) {
	m.ram[addr] = uint8(v)
}

// WriteU16 stores v little-endian starting at addr.
func (m *Memory) WriteU16(addr uint16, v uint16) {
	m.ram[addr] = uint8(v)
	m.ram[addr+1] = uint8(v >> 8)
}

// AppendU8 writes v at the address immediately following the previous
// sequential write (starting at 0 the first time it's called) and
// advances the cursor by one. Used by test fixtures and the demo
// program loader; the execution core never calls this.
func (m *Memory) AppendU8(v uint8) {
	m.WriteU8(m.nextWrite, v)
	m.nextWrite++
}

// AppendU16 is the 16-bit, little-endian equivalent of AppendU8.
func (m *Memory) AppendU16(v uint16) {
	m.WriteU16(m.nextWrite, v)
	m.nextWrite += 2
}

// SeekAppend repositions the sequential-write cursor used by AppendU8
// and AppendU16.
func (m *Memory) SeekAppend(addr uint16) {
	m.nextWrite = addr
}

// Reset zeroes the entire store and installs AddrResetVector as the
// reset vector so a freshly reset Memory always has a well-defined
// start address until a real ROM image is loaded over it.
func (m *Memory) Reset() {
	for i := range m.ram {
		m.ram[i] = 0
	}
	m.WriteU16(VectorReset, AddrResetVector)
	m.nextWrite = 0
}

// LoadFromFile reads the file at path and copies its bytes into memory
// starting at addr, wrapping modulo 2^16 if the file is long enough to
// run off the end of the address space.
func (m *Memory) LoadFromFile(addr uint16, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading ROM image %q: %w", path, err)
	}
	for i, v := range b {
		m.ram[addr+uint16(i)] = v
	}
	return nil
}
