// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Styles renders the CLI listings on one renderer.
type Styles struct {
	Name    lipgloss.Style
	Version lipgloss.Style
	Muted   lipgloss.Style
	Ok      lipgloss.Style
	Bad     lipgloss.Style
}

// NewStyles builds the listing styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Name:    r.NewStyle().Bold(true).Foreground(Iris),
		Version: r.NewStyle().Foreground(Green),
		Muted:   r.NewStyle().Foreground(Slate),
		Ok:      r.NewStyle().Foreground(Green),
		Bad:     r.NewStyle().Foreground(Yellow),
	}
}
