package editor

import (
	"github.com/rivo/uniseg"

	"memowidget/pkg/memo"
)

const (
	DefaultFontSize = 16.0
	MinFontSize     = 8.0
	MaxFontSize     = 96.0
)

// State is one editing session: the live document, the selection and the
// global font size used for text without a Size span.
type State struct {
	Doc      *memo.Document
	FontSize float64
	// SizeScale converts a size delta into span size units.
	SizeScale float64

	sel memo.Selection
}

func NewState(doc *memo.Document) *State {
	s := &State{Doc: doc, FontSize: DefaultFontSize, SizeScale: 1}
	s.Normalize()
	return s
}

func (s *State) Normalize() {
	if s.Doc == nil {
		s.Doc = memo.NewDocument("")
	}
	if s.SizeScale <= 0 {
		s.SizeScale = 1
	}
	s.FontSize = clampFloat(s.FontSize, MinFontSize, MaxFontSize)
	s.sel = s.sel.Clamp(s.Doc.Len())
}

func (s *State) Document() *memo.Document { return s.Doc }

func (s *State) Selection() memo.Selection { return s.sel }

// Restore replaces the live document and selection, as history replay does.
func (s *State) Restore(doc *memo.Document, sel memo.Selection) {
	s.Doc = doc
	s.sel = sel
	s.Normalize()
}

func (s *State) Select(a, b int) {
	s.sel = memo.NewSelection(a, b).Clamp(s.Doc.Len())
}

func (s *State) SetCaret(pos int) {
	s.Select(pos, pos)
}

func (s *State) SelectAll() {
	s.sel = memo.NewSelection(0, s.Doc.Len())
}

func (s *State) HasSelection() bool {
	return !s.sel.IsCaret()
}

func (s *State) SelectedText() string {
	return s.Doc.Slice(s.sel.Start, s.sel.End)
}

func (s *State) ToggleBold() bool {
	return ToggleMarker(s.Doc, memo.KindBold, s.sel.Start, s.sel.End)
}

func (s *State) ToggleItalic() bool {
	return ToggleMarker(s.Doc, memo.KindItalic, s.sel.Start, s.sel.End)
}

func (s *State) ToggleUnderline() bool {
	return ToggleMarker(s.Doc, memo.KindUnderline, s.sel.Start, s.sel.End)
}

func (s *State) SetColor(rgb int) bool {
	return SetColor(s.Doc, s.sel.Start, s.sel.End, rgb)
}

// EffectiveSize is the size at the selection start.
func (s *State) EffectiveSize() int {
	return EffectiveSize(s.Doc, s.sel.Start, int(s.FontSize))
}

// AdjustSize changes the size of the selection by delta, or the global font
// size when nothing is selected. It reports whether anything changed.
func (s *State) AdjustSize(delta float64) bool {
	if !s.HasSelection() {
		next := clampFloat(s.FontSize+delta, MinFontSize, MaxFontSize)
		changed := next != s.FontSize
		s.FontSize = next
		return changed
	}
	size := clamp(s.EffectiveSize()+int(delta*s.SizeScale), MinSpanSize, MaxSpanSize)
	return ResizeRange(s.Doc, s.sel.Start, s.sel.End, size)
}

// ReplaceSelection replaces the selected text (or inserts at the caret) and
// leaves the caret after the new text.
func (s *State) ReplaceSelection(text string) {
	pos := ReplaceText(s.Doc, s.sel.Start, s.sel.End, text)
	s.sel = memo.Caret(pos)
}

func (s *State) Insert(text string) {
	s.ReplaceSelection(text)
}

// DeleteBackward removes the selection, or the grapheme cluster before the
// caret. It reports whether text was removed.
func (s *State) DeleteBackward() bool {
	if s.HasSelection() {
		s.ReplaceSelection("")
		return true
	}
	pos := s.sel.Start
	if pos == 0 {
		return false
	}
	n := lastClusterUnits(memo.SliceUnits(s.Doc.Text, 0, pos))
	s.sel = memo.NewSelection(pos-n, pos)
	s.ReplaceSelection("")
	return true
}

// DeleteForward removes the selection, or the grapheme cluster after the caret.
func (s *State) DeleteForward() bool {
	if s.HasSelection() {
		s.ReplaceSelection("")
		return true
	}
	pos := s.sel.Start
	total := s.Doc.Len()
	if pos >= total {
		return false
	}
	n := firstClusterUnits(memo.SliceUnits(s.Doc.Text, pos, total))
	s.sel = memo.NewSelection(pos, pos+n)
	s.ReplaceSelection("")
	return true
}

func firstClusterUnits(text string) int {
	g := uniseg.NewGraphemes(text)
	if !g.Next() {
		return 0
	}
	return memo.Units(g.Str())
}

func lastClusterUnits(text string) int {
	last := ""
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		last = g.Str()
	}
	return memo.Units(last)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
