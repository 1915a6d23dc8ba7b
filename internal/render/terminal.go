package render

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"memowidget/pkg/memo"
)

type segment struct {
	text  string
	style Run
}

// Terminal draws the frame with ANSI escapes, aligning each line inside width
// columns according to the horizontal part of the gravity. Sizes have no
// terminal equivalent and are ignored.
func Terminal(f Frame, width int) string {
	if f.ShowHint {
		return align("\x1b[2m"+f.Hint+"\x1b[0m", uniseg.StringWidth(f.Hint), width, f.Gravity.Column())
	}

	lines := [][]segment{nil}
	for _, r := range f.Runs {
		parts := strings.Split(memo.SliceUnits(f.Text, r.Start, r.End), "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], segment{text: p, style: r})
			}
		}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		cols := 0
		for _, seg := range line {
			b.WriteString(sgr(seg.style))
			b.WriteString(seg.text)
			b.WriteString("\x1b[0m")
			cols += uniseg.StringWidth(seg.text)
		}
		out = append(out, align(b.String(), cols, width, f.Gravity.Column()))
	}
	return strings.Join(out, "\n")
}

func sgr(r Run) string {
	codes := make([]string, 0, 4)
	if r.Bold {
		codes = append(codes, "1")
	}
	if r.Italic {
		codes = append(codes, "3")
	}
	if r.Underline {
		codes = append(codes, "4")
	}
	if r.HasColor {
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", r.Color>>16&0xFF, r.Color>>8&0xFF, r.Color&0xFF))
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func align(s string, cols, width, column int) string {
	pad := width - cols
	if pad <= 0 || column == 0 {
		return s
	}
	if column == 1 {
		pad /= 2
	}
	return strings.Repeat(" ", pad) + s
}
