package editor

import (
	"memowidget/pkg/memo"
)

const (
	MinSpanSize = 8
	MaxSpanSize = 256
)

// ToggleMarker flips a Bold, Italic or Underline marker over [start, end).
// When any span of kind overlaps the range, every such span is removed;
// otherwise one span covering exactly the range is inserted. It returns false
// when the range is empty after clamping or kind is not a marker.
func ToggleMarker(doc *memo.Document, kind memo.Kind, start, end int) bool {
	if doc == nil || !kind.IsMarker() {
		return false
	}
	start, end = doc.ClampRange(start, end)
	if start == end {
		return false
	}
	if doc.RemoveOverlapping(kind, start, end) > 0 {
		return true
	}
	return doc.Insert(memo.Span{Kind: kind, Start: start, End: end})
}

// SetColor overwrites the color of [start, end) with value.
func SetColor(doc *memo.Document, start, end, value int) bool {
	if doc == nil {
		return false
	}
	start, end = doc.ClampRange(start, end)
	if start == end {
		return false
	}
	doc.RemoveOverlapping(memo.KindColor, start, end)
	return doc.Insert(memo.Span{Kind: memo.KindColor, Start: start, End: end, Value: value & 0xFFFFFF})
}

// ResizeRange gives [start, end) a single Size span of newSize. Size spans
// straddling either boundary keep their value on the part outside the range,
// and spans inside the range are dropped.
func ResizeRange(doc *memo.Document, start, end, newSize int) bool {
	if doc == nil {
		return false
	}
	start, end = doc.ClampRange(start, end)
	if start == end {
		return false
	}

	kept := make([]memo.Span, 0, len(doc.Spans)+2)
	for _, sp := range doc.Spans {
		if sp.Kind != memo.KindSize || !sp.Overlaps(start, end) {
			kept = append(kept, sp)
			continue
		}
		if sp.Start < start {
			left := sp
			left.End = start
			kept = append(kept, left)
		}
		if sp.End > end {
			right := sp
			right.Start = end
			kept = append(kept, right)
		}
	}
	doc.Spans = kept
	return doc.Insert(memo.Span{Kind: memo.KindSize, Start: start, End: end, Value: clamp(newSize, MinSpanSize, MaxSpanSize)})
}

// EffectiveSize returns the size rendered at pos: the value of the most
// recently applied Size span covering it, or fallback.
func EffectiveSize(doc *memo.Document, pos, fallback int) int {
	if doc == nil {
		return fallback
	}
	covering := doc.Covering(memo.KindSize, pos)
	if len(covering) == 0 {
		return fallback
	}
	return covering[len(covering)-1].Value
}

// ReplaceText replaces the UTF-16 range [start, end) with insert and moves
// spans along with the text. Span boundaries are exclusive on both ends: text
// inserted at a span edge is not absorbed, text inserted strictly inside a
// span extends it. Spans that collapse to nothing are dropped. The returned
// offset is the end of the inserted text.
func ReplaceText(doc *memo.Document, start, end int, insert string) int {
	if doc == nil {
		return 0
	}
	start, end = doc.ClampRange(start, end)
	inserted := memo.Units(insert)
	if start == end && inserted == 0 {
		return start
	}
	delta := inserted - (end - start)

	kept := make([]memo.Span, 0, len(doc.Spans))
	for _, sp := range doc.Spans {
		switch {
		case sp.End <= start:
		case sp.Start >= end:
			sp.Start += delta
			sp.End += delta
		case sp.Start < start && sp.End > end:
			sp.End += delta
		case sp.Start < start:
			sp.End = start
		case sp.End > end:
			sp.Start = start + inserted
			sp.End += delta
		default:
			continue
		}
		if sp.Start < sp.End {
			kept = append(kept, sp)
		}
	}

	doc.Text = memo.SpliceUnits(doc.Text, start, end, insert)
	doc.Spans = kept
	return start + inserted
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
