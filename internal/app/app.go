// Package app wires one widget editing session: it loads the widget from the
// preference store, routes edit actions through the history manager and
// writes everything back on save.
package app

import (
	"fmt"

	"github.com/atotto/clipboard"

	"memowidget/internal/editor"
	"memowidget/internal/history"
	"memowidget/internal/logger"
	"memowidget/internal/prefs"
	"memowidget/internal/render"
	"memowidget/internal/ui"
	"memowidget/pkg/memo"
)

// Clipboard is the system clipboard as seen by copy, cut and paste.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

type Options struct {
	HistoryLimit int
	SizeScale    float64
	// Clipboard defaults to the system clipboard.
	Clipboard Clipboard
}

type App struct {
	store prefs.Store
	opts  Options
	clip  Clipboard

	id      int
	widget  prefs.Widget
	state   *editor.State
	history *history.Manager
	status  string
}

func New(store prefs.Store, opts Options) *App {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = history.DefaultLimit
	}
	if opts.SizeScale <= 0 {
		opts.SizeScale = 1
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	a := &App{store: store, opts: opts, clip: clip}
	a.reset(0, prefs.Defaults())
	return a
}

func (a *App) reset(id int, w prefs.Widget) {
	doc := memo.Deserialize(w.Title)
	a.id = id
	a.widget = w
	a.state = editor.NewState(doc)
	a.state.FontSize = w.FontSize
	a.state.SizeScale = a.opts.SizeScale
	a.state.Normalize()
	a.state.SetCaret(doc.Len())
	a.history = history.NewManager(a.state, a.opts.HistoryLimit)
	a.history.Import(w.UndoStack, w.RedoStack)
}

// Open loads widget id, replacing the current session. Missing or broken
// stored values fall back to defaults.
func (a *App) Open(id int) {
	a.reset(id, prefs.Load(a.store, id))
	a.status = fmt.Sprintf("Opened widget %d", id)
	logger.Infof("app: opened widget %d (%d units, %d spans, %d undo, %d redo)",
		id, a.state.Doc.Len(), len(a.state.Doc.Spans), a.history.UndoLen(), a.history.RedoLen())
}

// Save writes the memo, the widget settings and both history stacks.
func (a *App) Save() error {
	a.widget.Title = memo.Serialize(a.state.Doc)
	a.widget.FontSize = a.state.FontSize
	a.widget.UndoStack, a.widget.RedoStack = a.history.Export()
	if err := prefs.Save(a.store, a.id, a.widget); err != nil {
		a.status = "Save failed: " + err.Error()
		return err
	}
	a.status = fmt.Sprintf("Saved widget %d", a.id)
	logger.Infof("app: saved widget %d", a.id)
	return nil
}

// Delete purges every stored key of widget id. Deleting the open widget also
// resets the session.
func (a *App) Delete(id int) error {
	if err := prefs.Purge(a.store, id); err != nil {
		a.status = "Delete failed: " + err.Error()
		return err
	}
	if id == a.id {
		a.reset(id, prefs.Defaults())
	}
	a.status = fmt.Sprintf("Deleted widget %d", id)
	logger.Infof("app: purged widget %d", id)
	return nil
}

func (a *App) ID() int { return a.id }

func (a *App) Status() string { return a.status }

func (a *App) Widget() prefs.Widget { return a.widget }

func (a *App) State() *editor.State { return a.state }

func (a *App) History() *history.Manager { return a.history }

func (a *App) Document() *memo.Document { return a.state.Doc }

func (a *App) Frame() render.Frame {
	w := a.widget
	w.FontSize = a.state.FontSize
	return render.Compose(w, a.state.Doc)
}

func (a *App) Toolbar() ui.ToolbarState {
	return ui.Toolbar(a.state.Doc, a.state.Selection())
}
