package cpu

// Reserved 16-bit vectors, little-endian, per the data model. Mirrors
// internal/memory's constants of the same value; duplicated here so cpu
// depends only on the minimal Bank interface rather than the concrete
// memory package.
const (
	nmiVector   = uint16(0xFFFA)
	resetVector = uint16(0xFFFC)
	irqVector   = uint16(0xFFFE)
)
