package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memowidget/pkg/memo"
)

func newState(text string) *State {
	return NewState(memo.NewDocument(text))
}

func TestInsertAndDelete(t *testing.T) {
	s := newState("abcd")
	s.SetCaret(2)
	s.Insert("X")
	if got := s.Doc.Text; got != "abXcd" {
		t.Fatalf("unexpected insert result: %q", got)
	}
	if got := s.Selection(); got != memo.Caret(3) {
		t.Fatalf("unexpected caret: %+v", got)
	}
	s.DeleteForward()
	if got := s.Doc.Text; got != "abXd" {
		t.Fatalf("unexpected delete result: %q", got)
	}
	s.DeleteBackward()
	if got := s.Doc.Text; got != "abd" {
		t.Fatalf("unexpected backspace result: %q", got)
	}
}

func TestDeleteBackwardRemovesWholeCluster(t *testing.T) {
	s := newState("a\U0001F44D\U0001F3FD")
	s.SetCaret(s.Doc.Len())
	require.True(t, s.DeleteBackward())
	assert.Equal(t, "a", s.Doc.Text)
	assert.Equal(t, memo.Caret(1), s.Selection())

	s.SetCaret(0)
	assert.False(t, s.DeleteBackward())
}

func TestReplaceSelectionCollapsesCaret(t *testing.T) {
	s := newState("hello world")
	s.Select(11, 6)
	assert.Equal(t, "world", s.SelectedText())
	s.ReplaceSelection("go")
	assert.Equal(t, "hello go", s.Doc.Text)
	assert.Equal(t, memo.Caret(8), s.Selection())
}

func TestStyleActionsNeedSelection(t *testing.T) {
	s := newState("hello")
	s.SetCaret(2)
	assert.False(t, s.ToggleBold())
	assert.False(t, s.SetColor(0xFF0000))
	assert.Empty(t, s.Doc.Spans)
}

func TestInlineStyleAppliedToSelection(t *testing.T) {
	s := newState("hello world")
	s.Select(6, 11)
	require.True(t, s.ToggleBold())
	require.True(t, s.ToggleUnderline())
	require.True(t, s.SetColor(0x00FF00))
	assert.ElementsMatch(t, []memo.Span{
		{Kind: memo.KindBold, Start: 6, End: 11},
		{Kind: memo.KindUnderline, Start: 6, End: 11},
		{Kind: memo.KindColor, Start: 6, End: 11, Value: 0x00FF00},
	}, s.Doc.Spans)
}

func TestAdjustSizeWithoutSelectionClampsGlobal(t *testing.T) {
	s := newState("abc")
	require.True(t, s.AdjustSize(4))
	assert.Equal(t, 20.0, s.FontSize)
	s.AdjustSize(500)
	assert.Equal(t, MaxFontSize, s.FontSize)
	assert.False(t, s.AdjustSize(1))
	s.AdjustSize(-500)
	assert.Equal(t, MinFontSize, s.FontSize)
	assert.Empty(t, s.Doc.Spans)
}

func TestAdjustSizeWithSelection(t *testing.T) {
	s := newState("abcdefghij")
	s.SizeScale = 2
	s.Select(2, 5)
	require.True(t, s.AdjustSize(3))
	assert.Equal(t, []memo.Span{{Kind: memo.KindSize, Start: 2, End: 5, Value: 22}}, s.Doc.Spans)

	s.Select(4, 8)
	require.True(t, s.AdjustSize(-1.4))
	assert.ElementsMatch(t, []memo.Span{
		{Kind: memo.KindSize, Start: 2, End: 4, Value: 22},
		{Kind: memo.KindSize, Start: 4, End: 8, Value: 20},
	}, s.Doc.Spans)

	s.Select(0, 10)
	s.AdjustSize(1000)
	assert.Equal(t, []memo.Span{{Kind: memo.KindSize, Start: 0, End: 10, Value: MaxSpanSize}}, s.Doc.Spans)
}

func TestRestoreClampsSelection(t *testing.T) {
	s := newState("abcdef")
	s.Restore(memo.NewDocument("ab"), memo.Caret(5))
	assert.Equal(t, "ab", s.Doc.Text)
	assert.Equal(t, memo.Caret(2), s.Selection())

	s.Restore(nil, memo.Caret(1))
	require.NotNil(t, s.Doc)
	assert.Equal(t, memo.Caret(0), s.Selection())
}

func TestSelectAll(t *testing.T) {
	s := newState("a\U0001F600")
	s.SelectAll()
	assert.Equal(t, memo.NewSelection(0, 3), s.Selection())
}
