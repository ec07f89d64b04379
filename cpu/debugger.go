package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"zinvaders/mem"
	"zinvaders/ports"
)

type model struct {
	cpu   *CPU
	mem   *mem.Bus
	ports *ports.Bus

	prevPC uint16
	halted bool
}

// Init is the first function bubbletea calls. No initial command is
// needed; the ROM is already loaded into mem by the caller of Debug.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Space or 'j' single-
// steps the CPU one instruction; 'q' quits.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step(m.mem, m.ports)
			m.halted = m.cpu.Halted
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of memory as a line, bracketing
// the byte at the current PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.mem.ReadByte(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Flags.S,
		m.cpu.Flags.Z,
		m.cpu.Flags.AC,
		m.cpu.Flags.P,
		m.cpu.Flags.CY,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x
BC: %04x
DE: %04x
HL: %04x
CYC: %d  HALT: %v
S Z AC P CY
`,
		m.cpu.PC, m.prevPC,
		m.cpu.SP,
		m.cpu.A,
		m.cpu.BC(),
		m.cpu.DE(),
		m.cpu.HL(),
		m.cpu.Cycles, m.halted,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}
	base := m.cpu.PC - m.cpu.PC%16
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(uint16(int(base)+i*16)))
	}
	return strings.Join(rows, "\n")
}

// View renders the program's UI: a memory window around PC, the
// register/flag status panel, and a dump of the next opcode entry.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(Opcodes[m.mem.ReadByte(m.cpu.PC)]),
	)
}

// Debug starts an interactive single-step TUI against a CPU that
// already has a ROM loaded into m and wired to p.
func (c *CPU) Debug(m *mem.Bus, p *ports.Bus) {
	if _, err := tea.NewProgram(model{cpu: c, mem: m, ports: p}).Run(); err != nil {
		panic(err)
	}
}
