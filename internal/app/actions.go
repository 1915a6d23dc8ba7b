package app

import (
	"fmt"
	"strings"

	"memowidget/internal/logger"
	"memowidget/internal/prefs"
	"memowidget/internal/ui"
	"memowidget/pkg/memo"
)

func (a *App) Select(start, end int) {
	a.state.Select(start, end)
}

func (a *App) SelectAll() {
	a.state.SelectAll()
}

// TypeText replaces the selection with text, or inserts it at the caret.
func (a *App) TypeText(text string) bool {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" && !a.state.HasSelection() {
		return false
	}
	a.history.BeginTextEdit()
	a.state.ReplaceSelection(text)
	return true
}

// SetText replaces the whole memo.
func (a *App) SetText(text string) {
	a.state.SelectAll()
	if !a.TypeText(text) {
		a.state.SetCaret(0)
	}
}

func (a *App) Backspace() bool {
	if !a.state.HasSelection() && a.state.Selection().Start == 0 {
		return false
	}
	a.history.BeginTextEdit()
	return a.state.DeleteBackward()
}

func (a *App) DeleteForward() bool {
	if !a.state.HasSelection() && a.state.Selection().Start >= a.state.Doc.Len() {
		return false
	}
	a.history.BeginTextEdit()
	return a.state.DeleteForward()
}

func (a *App) ToggleBold() bool {
	return a.toggle("Bold", a.state.ToggleBold, func(st ui.ToolbarState) bool { return st.Bold })
}

func (a *App) ToggleItalic() bool {
	return a.toggle("Italic", a.state.ToggleItalic, func(st ui.ToolbarState) bool { return st.Italic })
}

func (a *App) ToggleUnderline() bool {
	return a.toggle("Underline", a.state.ToggleUnderline, func(st ui.ToolbarState) bool { return st.Underline })
}

func (a *App) toggle(name string, apply func() bool, on func(ui.ToolbarState) bool) bool {
	if !a.state.HasSelection() {
		return false
	}
	a.history.SnapshotBeforeMutation()
	if !apply() {
		return false
	}
	if on(a.Toolbar()) {
		a.status = name + " on"
	} else {
		a.status = name + " off"
	}
	return true
}

func (a *App) SetColor(rgb int) bool {
	if !a.state.HasSelection() {
		return false
	}
	a.history.SnapshotBeforeMutation()
	if !a.state.SetColor(rgb) {
		return false
	}
	a.status = "Applied text color " + ui.FormatHex(rgb)
	return true
}

func (a *App) SetColorHex(hex string) error {
	rgb, err := ui.ParseHex(hex)
	if err != nil {
		a.status = err.Error()
		return err
	}
	a.SetColor(rgb)
	return nil
}

// ApplySwatch colors the selection with palette entry i.
func (a *App) ApplySwatch(i int) error {
	rgb, err := ui.SwatchColor(i)
	if err != nil {
		return err
	}
	a.SetColor(rgb)
	return nil
}

// AdjustSize resizes the selection, or the global font size with no selection.
// Only the selection case touches the document and is recorded for undo.
func (a *App) AdjustSize(delta float64) bool {
	if a.state.HasSelection() {
		a.history.SnapshotBeforeMutation()
	}
	if !a.state.AdjustSize(delta) {
		return false
	}
	if a.state.HasSelection() {
		a.status = fmt.Sprintf("Size %d", a.state.EffectiveSize())
	} else {
		a.status = fmt.Sprintf("Font size %.0f", a.state.FontSize)
	}
	return true
}

func (a *App) Undo() bool {
	if !a.history.Undo() {
		a.status = "Nothing to undo"
		return false
	}
	a.status = "Undo"
	logger.Debugf("app: undo, %d left", a.history.UndoLen())
	return true
}

func (a *App) Redo() bool {
	if !a.history.Redo() {
		a.status = "Nothing to redo"
		return false
	}
	a.status = "Redo"
	logger.Debugf("app: redo, %d left", a.history.RedoLen())
	return true
}

func (a *App) SetGravity(g prefs.Gravity) {
	if !g.Valid() {
		return
	}
	a.widget.Gravity = g
	a.status = "Alignment " + g.String()
}

func (a *App) SetAlpha(alpha int) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 255 {
		alpha = 255
	}
	a.widget.Alpha = alpha
	a.status = fmt.Sprintf("Background alpha %d", alpha)
}

// SetBackgroundHex sets the background RGB, keeping an opaque alpha byte in
// the stored color; visible transparency comes from the alpha setting.
func (a *App) SetBackgroundHex(hex string) error {
	rgb, err := ui.ParseHex(hex)
	if err != nil {
		a.status = err.Error()
		return err
	}
	a.widget.BgColor = 0xFF000000 | uint32(rgb)
	a.status = "Background " + ui.FormatHex(rgb)
	return nil
}

// Copy puts the selected text, or the whole memo without a selection, on the
// clipboard.
func (a *App) Copy() error {
	text := a.state.SelectedText()
	if !a.state.HasSelection() {
		text = a.state.Doc.Text
	}
	if err := a.clip.WriteAll(text); err != nil {
		a.status = "Copy failed: " + err.Error()
		return err
	}
	a.status = fmt.Sprintf("Copied %d characters", memo.Units(text))
	return nil
}

func (a *App) Cut() error {
	if !a.state.HasSelection() {
		return nil
	}
	if err := a.clip.WriteAll(a.state.SelectedText()); err != nil {
		a.status = "Cut failed: " + err.Error()
		return err
	}
	a.history.BeginTextEdit()
	a.state.ReplaceSelection("")
	return nil
}

func (a *App) Paste() error {
	text, err := a.clip.ReadAll()
	if err != nil {
		a.status = "Paste failed: " + err.Error()
		return err
	}
	if text != "" {
		a.TypeText(text)
	}
	return nil
}

// Invoke runs a named toolbar or keyboard action. Unknown ids report an
// error without touching the session.
func (a *App) Invoke(id string) error {
	switch id {
	case "save":
		return a.Save()
	case "undo":
		a.Undo()
	case "redo":
		a.Redo()
	case "bold":
		a.ToggleBold()
	case "italic":
		a.ToggleItalic()
	case "underline":
		a.ToggleUnderline()
	case "size_up":
		a.AdjustSize(1)
	case "size_down":
		a.AdjustSize(-1)
	case "select_all":
		a.SelectAll()
	case "backspace":
		a.Backspace()
	case "delete":
		a.DeleteForward()
	case "copy":
		return a.Copy()
	case "cut":
		return a.Cut()
	case "paste":
		return a.Paste()
	default:
		return fmt.Errorf("app: unknown action %q", id)
	}
	return nil
}
