package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bazzargh/mos6502/internal/cpu"
	"github.com/bazzargh/mos6502/internal/debugger"
	"github.com/bazzargh/mos6502/internal/disassemble"
	"github.com/bazzargh/mos6502/internal/memory"
)

// exit codes
const (
	exitOK         = 0
	exitDecodeErr  = 1
	exitLoadErr    = 2
)

// demoProgram counts up from 0 in the accumulator forever, a small
// canned payload for --demo so `run`/`repl` have something to execute
// without requiring a ROM file.
var demoProgram = []uint8{
	0xA9, 0x00, // LDA #$00
	0x18,       // CLC
	0x69, 0x01, // ADC #$01
	0x4C, 0x02, 0x06, // JMP $0602
}

const demoLoadAddr = uint16(0x0600)

func main() {
	root := &cobra.Command{
		Use:   "mos6502",
		Short: "A MOS 6502 instruction-set emulator",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newDisasmCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("mos6502: %v", err)
	}
}

func newRunCmd() *cobra.Command {
	var cycles uint64
	var demo bool
	var rom string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a ROM image for a fixed cycle budget and print final state",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")

			m, c, err := setup(demo, rom)
			if err != nil {
				fmt.Fprintf(os.Stderr, "mos6502: %v\n", err)
				os.Exit(exitLoadErr)
			}

			for remaining := cycles; remaining > 0; {
				if verbosity > 0 {
					line := disassemble.Step(c.PC, m)
					fmt.Fprintln(os.Stdout, line.String())
				}
				used, err := c.Step()
				if err != nil {
					fmt.Fprintf(os.Stderr, "mos6502: %v\n", err)
					printState(c)
					os.Exit(exitDecodeErr)
				}
				if uint64(used) >= remaining {
					break
				}
				remaining -= uint64(used)
			}

			printState(c)
			os.Exit(exitOK)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&cycles, "cycles", 1000, "cycle budget to run for")
	cmd.Flags().BoolVar(&demo, "demo", false, "load the built-in demo program instead of --rom")
	cmd.Flags().StringVar(&rom, "rom", "", "path to a raw ROM image to load at the reset vector")
	cmd.Flags().CountP("verbose", "v", "print each instruction's disassembly as it runs (repeatable)")

	return cmd
}

func newReplCmd() *cobra.Command {
	var demo bool
	var rom string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Launch the interactive single-step debugger",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, c, err := setup(demo, rom)
			if err != nil {
				fmt.Fprintf(os.Stderr, "mos6502: %v\n", err)
				os.Exit(exitLoadErr)
			}
			if err := debugger.Run(c, m); err != nil {
				fmt.Fprintf(os.Stderr, "mos6502: %v\n", err)
				os.Exit(exitDecodeErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "load the built-in demo program instead of --rom")
	cmd.Flags().StringVar(&rom, "rom", "", "path to a raw ROM image to load at the reset vector")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	var startPC uint16
	var length uint16

	cmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a raw binary from a start address to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := memory.New()
			if err := m.LoadFromFile(0, args[0]); err != nil {
				fmt.Fprintf(os.Stderr, "mos6502: %v\n", err)
				os.Exit(exitLoadErr)
			}

			pc := startPC
			end := uint32(startPC) + uint32(length)
			for uint32(pc) < end {
				line := disassemble.Step(pc, m)
				fmt.Fprintln(os.Stdout, line.String())
				pc += line.Len
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&startPC, "start-pc", 0x0000, "address to start disassembling from")
	cmd.Flags().Uint16Var(&length, "length", 0x0100, "number of bytes to disassemble")

	return cmd
}

// setup builds a fresh Memory and CPU, loads either the demo program or
// the ROM at path, points the reset vector at the load address, and
// powers the CPU on.
func setup(demo bool, romPath string) (*memory.Memory, *cpu.CPU, error) {
	m := memory.New()
	m.Reset()

	loadAddr := demoLoadAddr
	switch {
	case demo:
		m.SeekAppend(loadAddr)
		for _, b := range demoProgram {
			m.AppendU8(b)
		}
	case romPath != "":
		if err := m.LoadFromFile(loadAddr, romPath); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("one of --demo or --rom is required")
	}

	m.WriteU16(memory.VectorReset, loadAddr)

	c := cpu.New(m)
	c.PowerOn()
	return m, c, nil
}

func printState(c *cpu.CPU) {
	fmt.Printf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X cycles=%d\n",
		c.PC, c.A, c.X, c.Y, c.SP, c.P.Byte(), c.Cycles)
}
