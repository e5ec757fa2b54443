package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// branchPalette cycles through colors for branch names.
var branchPalette = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// paletteColor returns the palette entry for index as a lipgloss color.
func paletteColor(index int) lipgloss.Color {
	c := branchPalette[index%len(branchPalette)]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
	Current lipgloss.Style
	Branch  lipgloss.Style
	Hash    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) *Styles {
	if !color {
		plain := r.NewStyle()
		return &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain, Dim: plain,
			Title: plain, Key: plain, Current: plain, Branch: plain, Hash: plain,
		}
	}
	return &Styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    r.NewStyle().Bold(true),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Key:     r.NewStyle().Foreground(lipgloss.Color("14")),
		Current: r.NewStyle().Foreground(lipgloss.Color("6")),
		Branch:  r.NewStyle().Foreground(lipgloss.Color("12")),
		Hash:    r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// branchStyle colors the index-th branch name from the palette.
func (p *Printer) branchStyle(index int) lipgloss.Style {
	if !p.color {
		return p.styles.Branch
	}
	return p.styles.Branch.Foreground(paletteColor(index))
}
