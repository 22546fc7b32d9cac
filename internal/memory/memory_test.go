package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func TestReadWriteU8(t *testing.T) {
	m := New()
	m.WriteU8(0x1234, 0xAB)
	if got := m.ReadU8(0x1234); got != 0xAB {
		t.Errorf("ReadU8(0x1234) = 0x%02X, want 0xAB", got)
	}
}

func TestReadWriteU16LittleEndian(t *testing.T) {
	m := New()
	m.WriteU16(0x2000, 0xBEEF)
	if got := m.ReadU8(0x2000); got != 0xEF {
		t.Errorf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := m.ReadU8(0x2001); got != 0xBE {
		t.Errorf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := m.ReadU16(0x2000); got != 0xBEEF {
		t.Errorf("ReadU16(0x2000) = 0x%04X, want 0xBEEF", got)
	}
}

func TestReadI8SignExtends(t *testing.T) {
	m := New()
	m.WriteU8(0x10, 0xFF)
	if got := m.ReadI8(0x10); got != -1 {
		t.Errorf("ReadI8(0x10) = %d, want -1", got)
	}
}

func TestAppendSequentialWriteAdvancesCursor(t *testing.T) {
	m := New()
	m.SeekAppend(0x0600)
	m.AppendU8(0xA9)
	m.AppendU8(0x01)
	m.AppendU16(0xC000)

	want := []uint8{0xA9, 0x01, 0x00, 0xC0}
	got := []uint8{
		m.ReadU8(0x0600), m.ReadU8(0x0601), m.ReadU8(0x0602), m.ReadU8(0x0603),
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("appended bytes diff: %v", diff)
	}
}

func TestResetZeroesAndInstallsDefaultVector(t *testing.T) {
	m := New()
	m.WriteU8(0x00FF, 0x42)
	m.Reset()

	if got := m.ReadU8(0x00FF); got != 0 {
		t.Errorf("ReadU8(0x00FF) after reset = 0x%02X, want 0", got)
	}
	if got := m.ReadU16(VectorReset); got != AddrResetVector {
		t.Errorf("reset vector = 0x%04X, want 0x%04X", got, AddrResetVector)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(path, []byte{0xA9, 0x42, 0x00}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := New()
	if err := m.LoadFromFile(0xC000, path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	want := []uint8{0xA9, 0x42, 0x00}
	got := []uint8{m.ReadU8(0xC000), m.ReadU8(0xC001), m.ReadU8(0xC002)}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("loaded bytes diff: %v", diff)
	}
}

func TestLoadFromFileMissingPath(t *testing.T) {
	m := New()
	if err := m.LoadFromFile(0, filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Error("LoadFromFile with missing path: got nil error, want non-nil")
	}
}
