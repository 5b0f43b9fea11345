package networks

import (
	"strings"

	"namespace-tui/chains"
	"namespace-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Props carries everything the networks page needs to render.
type Props struct {
	Catalog     []chains.ChainProfile
	CurrentID   uint64
	ExpectedID  uint64
	SelectedIdx int
	Switching   bool
	SwitchError string
	SpinnerView string
}

// Nav returns the navigation bar for the networks view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " switch",
		styles.Key("l") + " debug log",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the network catalog. The wallet's current chain gets the
// filled dot; the chain the contracts live on is labelled.
func Render(p Props) string {
	h := styles.TitleStyle.Render("Networks")

	lines := []string{h, ""}
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Known networks:"))
	lines = append(lines, "")

	for i, profile := range p.Catalog {
		var marker string
		if profile.ID == p.CurrentID {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		detailStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == p.SelectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			detailStyle = detailStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		name := profile.Name
		if profile.ID == p.ExpectedID {
			name += "  (registry home)"
		}

		lines = append(lines, marker+nameStyle.Render(name))
		detail := profile.Hex()
		if len(profile.RPCURLs) > 0 {
			detail += "  " + profile.RPCURLs[0]
		}
		lines = append(lines, "  "+detailStyle.Render(detail))
		lines = append(lines, "")
	}

	if p.Switching {
		lines = append(lines, p.SpinnerView+" waiting for wallet approval…")
	}
	if p.SwitchError != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CWarn).Bold(true).Render("⚠ "+p.SwitchError))
	}

	return strings.Join(lines, "\n")
}
