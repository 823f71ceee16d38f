// Command dmg-debug is a terminal register/PPU inspector: it steps the
// CPU one instruction (or one frame) at a time and renders the current
// register file, flags, and a hex dump of memory around the program
// counter.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/andrewthecodertx/dmg-emulator/pkg/gameboy"
)

type model struct {
	gb     *gameboy.GameBoy
	prevPC uint16
	err    error
	log    []string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			m.prevPC = m.gb.CPU().PC
			_, err := m.gb.Step()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "f":
			m.prevPC = m.gb.CPU().PC
			if err := m.gb.RunFrame(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

const memoryWindow = 8

func (m model) memoryDump() string {
	pc := m.gb.CPU().PC
	start := pc - memoryWindow
	if start > pc {
		start = 0
	}
	bus := m.gb.Bus()
	line := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < memoryWindow*2; i++ {
		addr := start + i
		b := bus.Read(addr)
		if addr == pc {
			line += fmt.Sprintf("[%02X] ", b)
		} else {
			line += fmt.Sprintf(" %02X  ", b)
		}
	}
	return line
}

func (m model) status() string {
	c := m.gb.CPU()
	flags := "Z N H C\n"
	for _, set := range []bool{c.FlagZero(), c.FlagSubtract(), c.FlagHalfCarry(), c.FlagCarry()} {
		if set {
			flags += "1 "
		} else {
			flags += "0 "
		}
	}
	return fmt.Sprintf(`
PC: %04X (was %04X)
SP: %04X
A: %02X  F: %02X
B: %02X  C: %02X
D: %02X  E: %02X
H: %02X  L: %02X
IME: %v  HALT: %v  STOP: %v
cycles: %d
`,
		c.PC, m.prevPC, c.SP,
		c.A, c.F,
		c.B, c.C,
		c.D, c.E,
		c.H, c.L,
		c.IME, c.Halted, c.Stopped,
		m.gb.Cycles(),
	) + flags
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.memoryDump(),
		"",
		m.status(),
		"",
		"space/s: step instruction  f: run frame  q: quit",
		"",
		spew.Sdump(m.gb.Joypad()),
	)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dmg-debug <rom-file>")
		os.Exit(1)
	}

	gb, err := gameboy.New(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmg-debug: %v\n", err)
		os.Exit(1)
	}

	m, err := tea.NewProgram(model{gb: gb}).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmg-debug: %v\n", err)
		os.Exit(1)
	}
	final := m.(model)
	if final.err != nil {
		fmt.Println("halted:", final.err)
	}
}
