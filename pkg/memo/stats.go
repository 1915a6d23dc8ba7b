package memo

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

type Stats struct {
	Units      int
	Runes      int
	Graphemes  int
	Spans      int
	SpansKinds map[Kind]int
}

func (d *Document) Stats() Stats {
	st := Stats{SpansKinds: map[Kind]int{}}
	if d == nil {
		return st
	}
	st.Units = d.Len()
	st.Runes = utf8.RuneCountInString(d.Text)
	st.Graphemes = uniseg.GraphemeClusterCount(d.Text)
	st.Spans = len(d.Spans)
	for _, sp := range d.Spans {
		st.SpansKinds[sp.Kind]++
	}
	return st
}
