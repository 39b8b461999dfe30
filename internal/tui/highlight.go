package tui

// RowColHighlighter is the push-based linked-highlight protocol: the
// view that owns a pointer event calls its siblings' setters directly,
// so there is no shared highlight store. At most one row and one column
// are highlighted at a time; setting a new index replaces the old one.
type RowColHighlighter interface {
	SetRowHighlight(row int)
	ClearRowHighlight()
	SetColumnHighlight(col int)
	ClearColumnHighlight()
}

// highlightState is the single-row/single-column state each view keeps.
// -1 means no highlight.
type highlightState struct {
	row int
	col int
}

func newHighlightState() highlightState {
	return highlightState{row: -1, col: -1}
}

func (h *highlightState) SetRowHighlight(row int)    { h.row = row }
func (h *highlightState) ClearRowHighlight()         { h.row = -1 }
func (h *highlightState) SetColumnHighlight(col int) { h.col = col }
func (h *highlightState) ClearColumnHighlight()      { h.col = -1 }

// fanOut broadcasts a highlight change from the event-owning view to
// every registered listener, itself included.
type fanOut struct {
	listeners []RowColHighlighter
}

func (f *fanOut) register(views ...RowColHighlighter) {
	f.listeners = append(f.listeners, views...)
}

func (f *fanOut) setRow(row int) {
	for _, l := range f.listeners {
		l.SetRowHighlight(row)
	}
}

func (f *fanOut) clearRow() {
	for _, l := range f.listeners {
		l.ClearRowHighlight()
	}
}

func (f *fanOut) setColumn(col int) {
	for _, l := range f.listeners {
		l.SetColumnHighlight(col)
	}
}

func (f *fanOut) clearColumn() {
	for _, l := range f.listeners {
		l.ClearColumnHighlight()
	}
}
