package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgSecondary = lipgloss.Color("#21252B")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Plot area styles
	PlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PlotTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Matrix cell styles
	CellActiveStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	CellInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorFgComment)

	CellHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	RowLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	RowLabelHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	// Bar chart styles
	BarStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	BarHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Score rail styles
	ScorePositiveStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	ScoreNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	ScoreMissingStyle = lipgloss.NewStyle().
				Foreground(ColorFgComment)

	// Graph styles
	GraphEdgeStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	GraphNodeStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	GraphNodeDragStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	GraphLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	TimelineStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Tooltip styles. Inline only: the canvas applies styles per rune
	// run, so borders are drawn as runes, not style properties.
	TooltipStyle = lipgloss.NewStyle().
			Background(ColorBgSecondary).
			Foreground(ColorFgPrimary)

	TooltipBorderStyle = lipgloss.NewStyle().
				Background(ColorBgSecondary).
				Foreground(ColorYellow)

	TooltipTitleStyle = lipgloss.NewStyle().
				Background(ColorBgSecondary).
				Foreground(ColorYellow).
				Bold(true)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// Help overlay styles
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// Empty-state style
	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment).
			Padding(1, 2)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)

// GroupStyles cycles tool-group colors alongside the glyph shapes, so a
// group's rank picks both its shape and its color.
var GroupStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(ColorBlue),
	lipgloss.NewStyle().Foreground(ColorGreen),
	lipgloss.NewStyle().Foreground(ColorMagenta),
	lipgloss.NewStyle().Foreground(ColorCyan),
	lipgloss.NewStyle().Foreground(ColorYellow),
	lipgloss.NewStyle().Foreground(ColorRed),
	lipgloss.NewStyle().Foreground(ColorOrange),
	lipgloss.NewStyle().Foreground(ColorFgPrimary),
	lipgloss.NewStyle().Foreground(ColorFgSecondary),
}
