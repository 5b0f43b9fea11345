package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- MAIN --------------------

func main() {
	m := newModel()
	p := tea.NewProgram(&m, tea.WithAltScreen())
	// the wallet manager's chain-change hook pushes messages through program
	program = p
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
