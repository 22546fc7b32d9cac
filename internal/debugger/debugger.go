// Package debugger implements an interactive single-step TUI over a CPU
// and its backing memory, built on bubbletea/lipgloss.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bazzargh/mos6502/internal/cpu"
	"github.com/bazzargh/mos6502/internal/disassemble"
)

const historyLimit = 40

var (
	registerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	flagSetStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	flagClrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// memBank adapts *memory.Memory (or any equivalent Bank) to the
// disassemble.Bank interface the model reads through.
type memBank interface {
	ReadU8(addr uint16) uint8
}

type model struct {
	cpu  *cpu.CPU
	bank memBank

	history []string
	err     error
	running bool
}

// New builds the stepper model for c, backed by bank for disassembly
// reads. c must already be wired to the same backing store as bank.
func New(c *cpu.CPU, bank memBank) tea.Model {
	return model{cpu: c, bank: bank}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "s":
		m.step()
		if m.cpu.Halted() {
			return m, nil
		}

	case "r":
		for !m.cpu.Halted() {
			if !m.step() {
				break
			}
		}

	case "h", "?":
		m.history = append(m.history, helpText)
	}

	return m, nil
}

// step executes one instruction and records a trace line. It returns
// false if the step failed, leaving the CPU halted.
func (m *model) step() bool {
	line := disassemble.Step(m.cpu.PC, m.bank)
	_, err := m.cpu.Step()
	m.pushHistory(line.String())
	if err != nil {
		m.err = err
		m.pushHistory(errorStyle.Render(err.Error()))
		return false
	}
	return true
}

func (m *model) pushHistory(s string) {
	m.history = append(m.history, s)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

const helpText = "s: step   r: run   h/?: help   q: quit"

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.registers(),
		"",
		strings.Join(m.history, "\n"),
		"",
		helpStyle.Render(helpText),
	)
}

func (m model) registers() string {
	c := m.cpu
	reg := registerStyle.Render(fmt.Sprintf(
		"PC=%04X  A=%02X  X=%02X  Y=%02X  SP=%02X  cycles=%d",
		c.PC, c.A, c.X, c.Y, c.SP, c.Cycles,
	))
	return lipgloss.JoinVertical(lipgloss.Left, reg, m.flags())
}

func (m model) flags() string {
	labels := []struct {
		name string
		bit  cpu.Flags
	}{
		{"N", cpu.FlagNegative}, {"V", cpu.FlagOverflow}, {"-", cpu.FlagReserved},
		{"B", cpu.FlagBreak}, {"D", cpu.FlagDecimal}, {"I", cpu.FlagInterrupt},
		{"Z", cpu.FlagZero}, {"C", cpu.FlagCarry},
	}
	var sb strings.Builder
	for _, l := range labels {
		if m.cpu.P.Has(l.bit) {
			sb.WriteString(flagSetStyle.Render(l.name))
		} else {
			sb.WriteString(flagClrStyle.Render(l.name))
		}
		sb.WriteString(" ")
	}
	return sb.String()
}

// Run starts the interactive stepper and blocks until the user quits.
func Run(c *cpu.CPU, bank memBank) error {
	_, err := tea.NewProgram(New(c, bank)).Run()
	return err
}
