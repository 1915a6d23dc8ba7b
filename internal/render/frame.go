package render

import (
	"math"

	"memowidget/internal/prefs"
	"memowidget/pkg/memo"
)

// Frame is everything the widget needs to draw itself.
type Frame struct {
	Text string
	Runs []Run
	// Hint replaces Text when the memo is empty.
	Hint     string
	ShowHint bool
	// Background is the final ARGB fill.
	Background uint32
	Gravity    prefs.Gravity
	FontSize   float64
}

// Background combines the stored alpha with the RGB part of the stored color.
func Background(alpha int, bg uint32) uint32 {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 255 {
		alpha = 255
	}
	return uint32(alpha)<<24 | bg&0xFFFFFF
}

func Compose(w prefs.Widget, doc *memo.Document) Frame {
	if doc == nil {
		doc = memo.NewDocument("")
	}
	f := Frame{
		Text:       doc.Text,
		Background: Background(w.Alpha, w.BgColor),
		Gravity:    w.Gravity,
		FontSize:   w.FontSize,
	}
	if doc.Len() == 0 {
		f.Hint = prefs.DefaultHint
		f.ShowHint = true
		return f
	}
	f.Runs = Flatten(doc, int(math.Round(w.FontSize)))
	return f
}
