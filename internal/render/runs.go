// Package render projects a memo document and its widget settings into what
// the widget shows. The projection is one way: nothing here edits the model.
package render

import (
	"sort"

	"memowidget/pkg/memo"
)

// Run is a maximal stretch of text with uniform style.
type Run struct {
	Start     int
	End       int
	Bold      bool
	Italic    bool
	Underline bool
	// Color is 24-bit RGB and only meaningful when HasColor is set.
	Color    int
	HasColor bool
	Size     int
}

func (r Run) sameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Underline == o.Underline &&
		r.HasColor == o.HasColor && r.Color == o.Color && r.Size == o.Size
}

// Flatten splits the document into non-overlapping runs that cover the whole
// text. Where spans of one kind overlap, the one applied last wins.
func Flatten(doc *memo.Document, defaultSize int) []Run {
	n := doc.Len()
	if n == 0 {
		return nil
	}

	cuts := []int{0, n}
	for _, sp := range doc.Spans {
		if sp.Start > 0 && sp.Start < n {
			cuts = append(cuts, sp.Start)
		}
		if sp.End > 0 && sp.End < n {
			cuts = append(cuts, sp.End)
		}
	}
	sort.Ints(cuts)

	var runs []Run
	for i := 1; i < len(cuts); i++ {
		a, b := cuts[i-1], cuts[i]
		if a == b {
			continue
		}
		r := styleAt(doc, a, defaultSize)
		r.Start, r.End = a, b
		if len(runs) > 0 && runs[len(runs)-1].sameStyle(r) {
			runs[len(runs)-1].End = b
			continue
		}
		runs = append(runs, r)
	}
	return runs
}

func styleAt(doc *memo.Document, pos, defaultSize int) Run {
	r := Run{Size: defaultSize}
	for _, sp := range doc.Spans {
		if !sp.Covers(pos) {
			continue
		}
		switch sp.Kind {
		case memo.KindBold:
			r.Bold = true
		case memo.KindItalic:
			r.Italic = true
		case memo.KindBoldItalic:
			r.Bold, r.Italic = true, true
		case memo.KindUnderline:
			r.Underline = true
		case memo.KindColor:
			r.Color, r.HasColor = sp.Value&0xFFFFFF, true
		case memo.KindSize:
			r.Size = sp.Value
		}
	}
	return r
}
