package namespace

import (
	"fmt"
	"strings"

	"namespace-tui/helpers"
	"namespace-tui/registry"
	"namespace-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Props carries everything the namespace page needs to render.
type Props struct {
	TLD          string
	Contract     string
	Entries      []registry.SubNameEntry
	SelectedIdx  int
	Loading      bool
	Stale        bool
	RegisterBusy bool
	Query        string
	CopiedMsg    string
	SpinnerView  string
}

// Nav returns the navigation bar for the namespace view
func Nav(width int, formActive bool) string {
	var left string
	if formActive {
		left = strings.Join([]string{
			styles.Key("Enter") + " submit",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("m") + " mint name",
			styles.Key("y") + " copy owner",
			styles.Key("/") + " filter",
			styles.Key("r") + " refresh",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the minted-name list for one namespace contract. Entries come
// pre-filtered and in mint order.
func Render(p Props) string {
	h := styles.TitleStyle.Render("." + p.TLD)

	contractStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := contractStyle.Render(p.Contract)
	if p.CopiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(p.CopiedMsg)
	}

	if p.Loading && len(p.Entries) == 0 {
		return h + "\n" + sub + "\n\n" + p.SpinnerView + " fetching names…"
	}

	lines := []string{h, sub, ""}

	if len(p.Entries) == 0 {
		if p.Query != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render(fmt.Sprintf("No names matching %q.", p.Query)))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No names minted yet. Press 'm' to mint the first one."))
		}
	}

	for i, entry := range p.Entries {
		var marker string
		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		ownerStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == p.SelectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			nameStyle = nameStyle.Foreground(styles.CAccent2).Bold(true)
		} else {
			marker = "  "
		}

		line := marker + nameStyle.Render(entry.Name+"."+p.TLD)
		lines = append(lines, line)
		ownerLine := "  " + ownerStyle.Render("owner "+helpers.ShortenAddr(entry.Owner))
		if entry.Record != "" {
			ownerLine += "  " + ownerStyle.Render("→ "+entry.Record)
		}
		lines = append(lines, ownerLine)
		lines = append(lines, "")
	}

	var statusParts []string
	statusParts = append(statusParts, fmt.Sprintf("%d names", len(p.Entries)))
	if p.Loading {
		statusParts = append(statusParts, p.SpinnerView+" refreshing")
	}
	if p.RegisterBusy {
		statusParts = append(statusParts, p.SpinnerView+" mint pending")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render(strings.Join(statusParts, "  •  ")))

	if p.Stale {
		lines = append(lines, styles.StaleStyle.Render("⚠ showing last known list, refresh failed"))
	}

	return strings.Join(lines, "\n")
}
