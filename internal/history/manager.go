// Package history keeps bounded undo and redo stacks of full document
// snapshots for one editing session.
package history

import (
	"memowidget/pkg/memo"
)

const DefaultLimit = 128

// Editor is the live session the manager snapshots and restores.
type Editor interface {
	Document() *memo.Document
	Selection() memo.Selection
	Restore(doc *memo.Document, sel memo.Selection)
}

// Entry is one snapshot. Doc never aliases the live document.
type Entry struct {
	Doc       *memo.Document
	Selection memo.Selection
}

type Manager struct {
	ed    Editor
	limit int
	undo  []Entry
	redo  []Entry
	// replaying is set while a snapshot is being restored so that the edits
	// the restore causes are not recorded again.
	replaying bool
}

func NewManager(ed Editor, limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{ed: ed, limit: limit}
}

func (m *Manager) Limit() int { return m.limit }

func (m *Manager) Replaying() bool { return m.replaying }

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

func (m *Manager) UndoLen() int { return len(m.undo) }

func (m *Manager) RedoLen() int { return len(m.redo) }

// UndoEntries returns the undo stack, oldest first.
func (m *Manager) UndoEntries() []Entry {
	return cloneEntries(m.undo)
}

// RedoEntries returns the redo stack, oldest first.
func (m *Manager) RedoEntries() []Entry {
	return cloneEntries(m.redo)
}

// SnapshotBeforeMutation records the current state on the undo stack. It is
// a no-op while a snapshot is being replayed.
func (m *Manager) SnapshotBeforeMutation() bool {
	if m.replaying {
		return false
	}
	m.undo = push(m.undo, m.capture(), m.limit)
	return true
}

// BeginTextEdit must run before every user text edit: it drops the redo
// stack and records the current state. Style changes call
// SnapshotBeforeMutation instead and leave redo alone.
func (m *Manager) BeginTextEdit() bool {
	if m.replaying {
		return false
	}
	m.redo = nil
	return m.SnapshotBeforeMutation()
}

func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	m.redo = push(m.redo, m.capture(), m.limit)
	last := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.restore(last)
	return true
}

func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	m.SnapshotBeforeMutation()
	last := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.restore(last)
	return true
}

func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) capture() Entry {
	return Entry{Doc: m.ed.Document().Clone(), Selection: m.ed.Selection()}
}

func (m *Manager) restore(e Entry) {
	m.replaying = true
	defer func() { m.replaying = false }()
	doc := e.Doc
	if doc == nil {
		doc = memo.NewDocument("")
	}
	m.ed.Restore(doc, memo.Caret(e.Selection.Start))
}

func push(stack []Entry, e Entry, limit int) []Entry {
	stack = append(stack, e)
	if excess := len(stack) - limit; excess > 0 {
		stack = append(stack[:0:0], stack[excess:]...)
	}
	return stack
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Doc: e.Doc.Clone(), Selection: e.Selection}
	}
	return out
}
