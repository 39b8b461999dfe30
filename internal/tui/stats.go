package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatsPanel surfaces extraction counters, including how many output
// entries were dropped as malformed or dangling, so lenient parsing
// stays observable instead of silent.
type StatsPanel struct {
	enabled bool
	lines   []string
}

// NewStatsPanel creates a stats panel
func NewStatsPanel(enabled bool) StatsPanel {
	return StatsPanel{enabled: enabled}
}

// Toggle flips panel visibility.
func (s *StatsPanel) Toggle() {
	s.enabled = !s.enabled
}

// IsEnabled returns whether the panel is visible
func (s *StatsPanel) IsEnabled() bool {
	return s.enabled
}

// SetCounts replaces the panel content from the current render's model.
// topCombo is the most frequent tool combination, empty when there are
// no runs.
func (s *StatsPanel) SetCounts(traces, tools, calls, dropped, combos int, topCombo string) {
	s.lines = []string{
		fmt.Sprintf("traces   %d", traces),
		fmt.Sprintf("tools    %d", tools),
		fmt.Sprintf("calls    %d", calls),
		fmt.Sprintf("dropped  %d", dropped),
		fmt.Sprintf("combos   %d", combos),
	}
	if topCombo != "" {
		s.lines = append(s.lines, "top      "+topCombo)
	}
}

// Render renders the stats panel
func (s *StatsPanel) Render(width int) string {
	if !s.enabled {
		return ""
	}
	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("STATS")

	content := title + "\n" + strings.Join(s.lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(content)
}
