package tui

import (
	"strings"
	"testing"
)

func TestStatsPanelToggle(t *testing.T) {
	s := NewStatsPanel(false)
	if s.IsEnabled() {
		t.Fatal("panel enabled by default")
	}
	if got := s.Render(24); got != "" {
		t.Errorf("disabled panel rendered %q", got)
	}
	s.Toggle()
	if !s.IsEnabled() {
		t.Fatal("Toggle did not enable")
	}
}

func TestStatsPanelCounts(t *testing.T) {
	s := NewStatsPanel(true)
	s.SetCounts(12, 4, 37, 2, 5, "search+read ×6")

	got := s.Render(30)
	for _, want := range []string{
		"traces   12",
		"tools    4",
		"calls    37",
		"dropped  2",
		"combos   5",
		"top      search+read ×6",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("panel missing %q:\n%s", want, got)
		}
	}
}

func TestStatsPanelNoTopCombo(t *testing.T) {
	s := NewStatsPanel(true)
	s.SetCounts(0, 0, 0, 0, 0, "")
	if strings.Contains(s.Render(30), "top") {
		t.Error("empty input still rendered a top combination line")
	}
}
