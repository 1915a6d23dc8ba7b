// Package memo holds the styled memo document: a flat text buffer annotated
// with kind-tagged style spans, plus the JSON interchange codec for it.
//
// All offsets are UTF-16 code units, which keeps stored documents compatible
// with editors that index text that way.
package memo

import (
	"sort"
	"unicode/utf16"
)

type Kind uint8

const (
	KindColor Kind = iota + 1
	KindSize
	KindBold
	KindItalic
	KindUnderline
	// KindBoldItalic is a combined bold+italic marker. The codec always
	// writes it as two independent records and never reads it back.
	KindBoldItalic
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindSize:
		return "size"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindUnderline:
		return "underline"
	case KindBoldItalic:
		return "bold_italic"
	default:
		return "unknown"
	}
}

// HasValue reports whether spans of this kind carry a Value.
func (k Kind) HasValue() bool {
	return k == KindColor || k == KindSize
}

// IsMarker reports whether k is a valueless marker kind.
func (k Kind) IsMarker() bool {
	return k == KindBold || k == KindItalic || k == KindUnderline || k == KindBoldItalic
}

type Span struct {
	Kind  Kind
	Start int
	End   int
	// Value is a 24-bit RGB color for KindColor and a size in raw units for KindSize.
	Value int
	// Composing marks a transient input-method underline. It is never serialized.
	Composing bool
}

func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether s shares at least one code unit with [a, b).
func (s Span) Overlaps(a, b int) bool {
	return s.Start < b && a < s.End
}

func (s Span) Covers(pos int) bool {
	return s.Start <= pos && pos < s.End
}

func (s Span) Inside(a, b int) bool {
	return s.Start >= a && s.End <= b
}

// Selection is a caret (Start == End) or a range, always stored with Start <= End.
type Selection struct {
	Start int
	End   int
}

func NewSelection(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

func Caret(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

func (s Selection) IsCaret() bool { return s.Start == s.End }

func (s Selection) Clamp(n int) Selection {
	return NewSelection(clamp(s.Start, 0, n), clamp(s.End, 0, n))
}

type Document struct {
	Text  string
	Spans []Span
}

func NewDocument(text string) *Document {
	return &Document{Text: text}
}

// Len returns the text length in UTF-16 code units.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return Units(d.Text)
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Text: d.Text}
	if len(d.Spans) > 0 {
		out.Spans = make([]Span, len(d.Spans))
		copy(out.Spans, d.Spans)
	}
	return out
}

// ClampRange orders a and b and clamps both to [0, Len()].
func (d *Document) ClampRange(a, b int) (int, int) {
	n := d.Len()
	a = clamp(a, 0, n)
	b = clamp(b, 0, n)
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Slice returns the text between UTF-16 offsets a and b after clamping.
func (d *Document) Slice(a, b int) string {
	a, b = d.ClampRange(a, b)
	if a == b {
		return ""
	}
	return SliceUnits(d.Text, a, b)
}

// Overlapping returns the spans of kind that share a code unit with [a, b),
// in insertion order.
func (d *Document) Overlapping(kind Kind, a, b int) []Span {
	var out []Span
	for _, sp := range d.Spans {
		if sp.Kind == kind && sp.Overlaps(a, b) {
			out = append(out, sp)
		}
	}
	return out
}

// Covering returns the spans of kind that contain pos, in insertion order.
func (d *Document) Covering(kind Kind, pos int) []Span {
	var out []Span
	for _, sp := range d.Spans {
		if sp.Kind == kind && sp.Covers(pos) {
			out = append(out, sp)
		}
	}
	return out
}

func (d *Document) SpansOf(kind Kind) []Span {
	var out []Span
	for _, sp := range d.Spans {
		if sp.Kind == kind {
			out = append(out, sp)
		}
	}
	return out
}

// Insert clamps sp to the text bounds and appends it. Spans that end up
// empty are dropped and Insert returns false.
func (d *Document) Insert(sp Span) bool {
	n := d.Len()
	sp.Start = clamp(sp.Start, 0, n)
	sp.End = clamp(sp.End, sp.Start, n)
	if sp.Start >= sp.End {
		return false
	}
	d.Spans = append(d.Spans, sp)
	return true
}

// Remove deletes the first span equal to sp.
func (d *Document) Remove(sp Span) bool {
	for i := range d.Spans {
		if d.Spans[i] == sp {
			d.Spans = append(d.Spans[:i], d.Spans[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveOverlapping deletes every span of kind that overlaps [a, b) and
// returns how many were removed.
func (d *Document) RemoveOverlapping(kind Kind, a, b int) int {
	kept := d.Spans[:0]
	removed := 0
	for _, sp := range d.Spans {
		if sp.Kind == kind && sp.Overlaps(a, b) {
			removed++
			continue
		}
		kept = append(kept, sp)
	}
	d.Spans = kept
	return removed
}

// Equivalent reports whether a and b have the same text and the same
// multiset of spans, ignoring span order.
func Equivalent(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Text != b.Text || len(a.Spans) != len(b.Spans) {
		return false
	}
	x := sortedSpans(a.Spans)
	y := sortedSpans(b.Spans)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func sortedSpans(spans []Span) []Span {
	out := append([]Span(nil), spans...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return !out[i].Composing && out[j].Composing
	})
	return out
}

// Units returns the length of s in UTF-16 code units.
func Units(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// SliceUnits returns the substring of s between UTF-16 offsets a and b.
func SliceUnits(s string, a, b int) string {
	return string(utf16.Decode(encodeUnits(s)[a:b]))
}

// SpliceUnits replaces the UTF-16 range [a, b) of s with insert.
func SpliceUnits(s string, a, b int, insert string) string {
	u := encodeUnits(s)
	out := make([]uint16, 0, len(u)-(b-a)+len(insert))
	out = append(out, u[:a]...)
	out = append(out, encodeUnits(insert)...)
	out = append(out, u[b:]...)
	return string(utf16.Decode(out))
}

func encodeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
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
