package ui

import (
	"memowidget/pkg/memo"
)

// ToolbarState is what the formatting buttons show for the current selection.
type ToolbarState struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     int
	HasColor  bool
	// Swatch is the palette index of Color, or -1.
	Swatch int
}

// Toolbar inspects the first code unit of the selection. A caret at the end
// of the text has nothing to inspect and yields an empty state.
func Toolbar(doc *memo.Document, sel memo.Selection) ToolbarState {
	st := ToolbarState{Swatch: -1}
	if doc == nil {
		return st
	}
	a := sel.Start
	b := a + 1
	if a < 0 || b > doc.Len() {
		return st
	}
	st.Bold = len(doc.Overlapping(memo.KindBold, a, b)) > 0 || len(doc.Overlapping(memo.KindBoldItalic, a, b)) > 0
	st.Italic = len(doc.Overlapping(memo.KindItalic, a, b)) > 0 || len(doc.Overlapping(memo.KindBoldItalic, a, b)) > 0
	for _, sp := range doc.Overlapping(memo.KindUnderline, a, b) {
		if !sp.Composing {
			st.Underline = true
		}
	}
	if colors := doc.Overlapping(memo.KindColor, a, b); len(colors) > 0 {
		st.Color = colors[len(colors)-1].Value
		st.HasColor = true
		st.Swatch = Swatch(st.Color)
	}
	return st
}
