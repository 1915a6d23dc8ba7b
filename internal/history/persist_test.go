package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memowidget/pkg/memo"
)

func TestExportImportRoundTrip(t *testing.T) {
	st, h := newSession("hello")
	st.Select(1, 4)
	h.SnapshotBeforeMutation()
	st.ToggleBold()
	st.SetCaret(5)
	h.BeginTextEdit()
	st.Insert(" there")
	require.True(t, h.Undo())

	undo, redo := h.Export()
	assert.NotEmpty(t, undo)
	assert.NotContains(t, redo, RedoSeparator)

	_, restored := newSession("")
	restored.Import(undo, redo)

	want := h.UndoEntries()
	got := restored.UndoEntries()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, memo.Equivalent(want[i].Doc, got[i].Doc), "undo entry %d", i)
		assert.Equal(t, want[i].Selection, got[i].Selection, "undo entry %d", i)
	}
	require.Equal(t, 1, restored.RedoLen())
	assert.Equal(t, "hello there", restored.RedoEntries()[0].Doc.Text)
}

func TestEntryFormat(t *testing.T) {
	doc := memo.NewDocument("Hi")
	doc.Insert(memo.Span{Kind: memo.KindColor, Start: 0, End: 2, Value: 0xFF0000})
	got := encodeEntry(Entry{Doc: doc, Selection: memo.NewSelection(1, 2)})
	want := `{"text":"Hi","spans":[{"start":0,"end":2,"type":"color","value":16711680}]}|SELECTION|1|2`
	if got != want {
		t.Fatalf("unexpected entry:\n got %s\nwant %s", got, want)
	}
}

func TestDecodeEntryTolerance(t *testing.T) {
	e := decodeEntry(`{"text":"a|SELECTION|b","spans":[]}|SELECTION|2|3`)
	assert.Equal(t, "a|SELECTION|b", e.Doc.Text)
	assert.Equal(t, memo.NewSelection(2, 3), e.Selection)

	e = decodeEntry(`{"text":"abc"}|SELECTION|x|2`)
	assert.Equal(t, memo.NewSelection(0, 2), e.Selection)

	e = decodeEntry(`{"text":"abc"}`)
	assert.Equal(t, memo.Caret(0), e.Selection)

	e = decodeEntry(`garbage|SELECTION|1|2`)
	assert.Equal(t, "", e.Doc.Text)
	assert.Equal(t, memo.Caret(0), e.Selection)
}

func TestImportSkipsEmptySegmentsAndKeepsStacksOnEmptyData(t *testing.T) {
	st, h := newSession("keep")
	st.SetCaret(4)
	h.BeginTextEdit()

	h.Import("", "")
	assert.Equal(t, 1, h.UndoLen())

	h.Import(UndoSeparator+`{"text":"x"}|SELECTION|0|0`+UndoSeparator+UndoSeparator, "")
	require.Equal(t, 1, h.UndoLen())
	assert.Equal(t, "x", h.UndoEntries()[0].Doc.Text)
}

func TestImportKeepsNewestEntries(t *testing.T) {
	_, h := newSession("")
	parts := make([]string, 0, 130)
	for i := 1; i <= 130; i++ {
		parts = append(parts, fmt.Sprintf(`{"text":"entry %d"}|SELECTION|0|0`, i))
	}
	h.Import(strings.Join(parts, UndoSeparator), "")
	require.Equal(t, DefaultLimit, h.UndoLen())
	assert.Equal(t, "entry 3", h.UndoEntries()[0].Doc.Text)
}
