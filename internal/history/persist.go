package history

import (
	"strconv"
	"strings"

	"memowidget/internal/logger"
	"memowidget/pkg/memo"
)

const (
	UndoSeparator   = "\n<<<UNDO_SEP>>>\n"
	RedoSeparator   = "\n<<<REDO_SEP>>>\n"
	selectionMarker = "|SELECTION|"
)

// Export flattens both stacks, oldest entry first, for a key-value store.
func (m *Manager) Export() (undo, redo string) {
	return encodeStack(m.undo, UndoSeparator), encodeStack(m.redo, RedoSeparator)
}

// Import replaces the stacks from data produced by Export. An empty string
// leaves the corresponding stack untouched. Only the newest Limit entries of
// each stack are kept.
func (m *Manager) Import(undo, redo string) {
	if undo != "" {
		m.undo = decodeStack(undo, UndoSeparator, m.limit)
	}
	if redo != "" {
		m.redo = decodeStack(redo, RedoSeparator, m.limit)
	}
	logger.Debugf("history: imported %d undo and %d redo entries", len(m.undo), len(m.redo))
}

func encodeStack(stack []Entry, sep string) string {
	parts := make([]string, 0, len(stack))
	for _, e := range stack {
		parts = append(parts, encodeEntry(e))
	}
	return strings.Join(parts, sep)
}

func encodeEntry(e Entry) string {
	var b strings.Builder
	b.WriteString(memo.Serialize(e.Doc))
	b.WriteString(selectionMarker)
	b.WriteString(strconv.Itoa(e.Selection.Start))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(e.Selection.End))
	return b.String()
}

func decodeStack(data, sep string, limit int) []Entry {
	segments := strings.Split(data, sep)
	out := make([]Entry, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		out = append(out, decodeEntry(seg))
	}
	if excess := len(out) - limit; excess > 0 {
		logger.Warnf("history: dropping %d stored entries over the limit of %d", excess, limit)
		out = out[excess:]
	}
	return out
}

// decodeEntry splits "<doc>|SELECTION|<start>|<end>". The marker is looked up
// from the end so document text containing it survives. Offsets that do not
// parse become 0.
func decodeEntry(seg string) Entry {
	body := seg
	start, end := 0, 0
	if i := strings.LastIndex(seg, selectionMarker); i >= 0 {
		body = seg[:i]
		pos := strings.Split(seg[i+len(selectionMarker):], "|")
		if len(pos) >= 2 {
			start = atoiOrZero(pos[0])
			end = atoiOrZero(pos[1])
		}
	}
	doc := memo.Deserialize(body)
	return Entry{Doc: doc, Selection: memo.NewSelection(start, end).Clamp(doc.Len())}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
