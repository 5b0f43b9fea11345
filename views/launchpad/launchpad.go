package launchpad

import (
	"fmt"
	"strings"

	"namespace-tui/helpers"
	"namespace-tui/registry"
	"namespace-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Props carries everything the launchpad page needs to render.
type Props struct {
	Entries      []registry.TopLevelEntry
	SelectedIdx  int
	Loading      bool
	Stale        bool
	CreateBusy   bool
	WithdrawBusy bool
	Query        string
	SpinnerView  string
	FeeLabel     string
}

// Nav returns the navigation bar for the launchpad view
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
			styles.Key("Enter") + " open",
			styles.Key("n") + " new TLD",
			styles.Key("w") + " withdraw",
			styles.Key("/") + " filter",
			styles.Key("r") + " refresh",
			styles.Key("s") + " networks",
			styles.Key("l") + " debug log",
			styles.Key("q") + " quit",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// RenderList renders the TLD card list in factory enumeration order
func RenderList(entries []registry.TopLevelEntry, selectedIdx int) string {
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("No top-level domains yet. Press 'n' to create the first one.")
	}

	var listItems []string
	for i, entry := range entries {
		var itemStyle lipgloss.Style
		var marker string
		var tldLabel, contractLine string

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			tldLabel = "." + entry.TLD
			contractLine = lipgloss.NewStyle().Foreground(styles.CText).Render(entry.Contract)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			tldLabel = helpers.FadeString("."+entry.TLD, "#F25D94", "#EDFF82")
			contractLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#ba3fd7")).Render(helpers.FadeString(helpers.ShortenAddr(entry.Contract), "#7D5AFC", "#FF87D7"))
		}

		listItems = append(listItems, marker+itemStyle.Render(tldLabel)+"\n  "+contractLine)
	}

	return strings.Join(listItems, "\n\n")
}

// Render renders the full launchpad view
func Render(p Props) string {
	header := styles.TitleStyle.Render("Namespace Launchpad")
	subtitle := lipgloss.NewStyle().Foreground(styles.CMuted).Render(
		fmt.Sprintf("Browse top-level domains or deploy your own for %s", p.FeeLabel),
	)

	if p.Loading && len(p.Entries) == 0 {
		return header + "\n" + subtitle + "\n\n" + p.SpinnerView + " fetching domains…"
	}

	listView := RenderList(p.Entries, p.SelectedIdx)

	var statusParts []string
	if p.Query != "" {
		statusParts = append(statusParts, fmt.Sprintf("%d TLDs matching %q", len(p.Entries), p.Query))
	} else {
		statusParts = append(statusParts, fmt.Sprintf("%d TLDs", len(p.Entries)))
	}
	if p.Loading {
		statusParts = append(statusParts, p.SpinnerView+" refreshing")
	}
	if p.CreateBusy {
		statusParts = append(statusParts, p.SpinnerView+" create pending")
	}
	if p.WithdrawBusy {
		statusParts = append(statusParts, p.SpinnerView+" withdrawal pending")
	}
	statusBar := lipgloss.NewStyle().Foreground(styles.CMuted).Render(strings.Join(statusParts, "  •  "))

	content := header + "\n" + subtitle + "\n\n" + listView + "\n\n" + statusBar
	if p.Stale {
		content += "\n" + styles.StaleStyle.Render("⚠ showing last known list, refresh failed")
	}
	return content
}
