package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EdenWuyifan/AgentProfiler/internal/config"
	"github.com/EdenWuyifan/AgentProfiler/internal/trace"
	"github.com/EdenWuyifan/AgentProfiler/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	tracesPath := flag.String("traces", cfg.TracesPath, "path to a JSONL or JSON-array trace file")
	taxonomyPath := flag.String("taxonomy", cfg.TaxonomyPath, "path to a YAML group→tools taxonomy (optional)")
	width := flag.Int("width", cfg.Width, "plot width override in cells (0 = terminal width)")
	height := flag.Int("height", cfg.Height, "plot height override in cells (0 = computed)")
	flag.Parse()

	if *tracesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: agentprofiler -traces <file.jsonl> [-taxonomy <groups.yaml>]")
		os.Exit(2)
	}

	traces, err := trace.LoadFile(*tracesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading traces: %v\n", err)
		os.Exit(1)
	}
	taxonomy, err := config.LoadTaxonomy(*taxonomyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading taxonomy: %v\n", err)
		os.Exit(1)
	}
	slog.Info("loaded traces", "count", len(traces), "groups", len(taxonomy))

	opts := tui.Options{Width: *width, Height: *height}
	p := tea.NewProgram(
		tui.NewRootModel(traces, taxonomy, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
