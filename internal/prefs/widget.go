package prefs

import (
	"fmt"
	"strconv"

	"memowidget/internal/logger"
)

const (
	DefaultHint     = "Tap to write a memo"
	DefaultAlpha    = 0
	DefaultBgColor  = uint32(0xFF000000)
	DefaultGravity  = TopStart
	DefaultFontSize = 16.0
)

const (
	titlePrefix    = "appwidget_"
	alphaPrefix    = "alpha_"
	bgColorPrefix  = "bgcolor_"
	gravityPrefix  = "gravity_"
	fontNamePrefix = "fontname_"
	fontSizePrefix = "fontsize_"
	undoPrefix     = "undo_stack_"
	redoPrefix     = "redo_stack_"
)

func key(prefix string, id int) string { return prefix + strconv.Itoa(id) }

func TitleKey(id int) string { return key(titlePrefix, id) }

func UndoKey(id int) string { return key(undoPrefix, id) }

func RedoKey(id int) string { return key(redoPrefix, id) }

// Keys returns every key stored for widget id, including the legacy font
// name key that is only ever removed.
func Keys(id int) []string {
	return []string{
		key(titlePrefix, id),
		key(alphaPrefix, id),
		key(bgColorPrefix, id),
		key(gravityPrefix, id),
		key(fontNamePrefix, id),
		key(fontSizePrefix, id),
		key(undoPrefix, id),
		key(redoPrefix, id),
	}
}

// Widget is the persisted state of one widget.
type Widget struct {
	// Title is the serialized memo document, or DefaultHint when none was saved.
	Title    string
	Alpha    int
	BgColor  uint32
	Gravity  Gravity
	FontSize float64
	// UndoStack and RedoStack hold exported history, empty when there is none.
	UndoStack string
	RedoStack string
}

func Defaults() Widget {
	return Widget{
		Title:    DefaultHint,
		Alpha:    DefaultAlpha,
		BgColor:  DefaultBgColor,
		Gravity:  DefaultGravity,
		FontSize: DefaultFontSize,
	}
}

// Load reads every setting of widget id. It never fails: absent or broken
// values fall back to their defaults.
func Load(s Store, id int) Widget {
	return Widget{
		Title:     LoadTitle(s, id),
		Alpha:     LoadAlpha(s, id),
		BgColor:   LoadBgColor(s, id),
		Gravity:   LoadGravity(s, id),
		FontSize:  LoadFontSize(s, id),
		UndoStack: lookupString(s, key(undoPrefix, id), ""),
		RedoStack: lookupString(s, key(redoPrefix, id), ""),
	}
}

// Save writes every setting of widget id in one batch.
func Save(s Store, id int, w Widget) error {
	err := s.Edit(func(tx Tx) {
		tx.Put(key(titlePrefix, id), w.Title)
		tx.Put(key(alphaPrefix, id), strconv.Itoa(clampAlpha(w.Alpha)))
		tx.Put(key(bgColorPrefix, id), strconv.FormatUint(uint64(w.BgColor), 10))
		tx.Put(key(gravityPrefix, id), w.Gravity.String())
		tx.Put(key(fontSizePrefix, id), strconv.FormatFloat(w.FontSize, 'f', -1, 64))
		tx.Put(key(undoPrefix, id), w.UndoStack)
		tx.Put(key(redoPrefix, id), w.RedoStack)
	})
	if err != nil {
		return fmt.Errorf("prefs: save widget %d: %w", id, err)
	}
	return nil
}

// Purge removes every key of widget id in one batch.
func Purge(s Store, id int) error {
	err := s.Edit(func(tx Tx) {
		for _, k := range Keys(id) {
			tx.Remove(k)
		}
	})
	if err != nil {
		return fmt.Errorf("prefs: purge widget %d: %w", id, err)
	}
	return nil
}

func LoadTitle(s Store, id int) string {
	return lookupString(s, key(titlePrefix, id), DefaultHint)
}

func LoadAlpha(s Store, id int) int {
	v, ok := lookup(s, key(alphaPrefix, id))
	if !ok {
		return DefaultAlpha
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warnf("prefs: bad alpha for widget %d: %v", id, err)
		return DefaultAlpha
	}
	return clampAlpha(n)
}

func LoadBgColor(s Store, id int) uint32 {
	v, ok := lookup(s, key(bgColorPrefix, id))
	if !ok {
		return DefaultBgColor
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < -1<<31 || n > 1<<32-1 {
		logger.Warnf("prefs: bad background color for widget %d: %q", id, v)
		return DefaultBgColor
	}
	return uint32(n)
}

func LoadGravity(s Store, id int) Gravity {
	v, ok := lookup(s, key(gravityPrefix, id))
	if !ok {
		return DefaultGravity
	}
	g, err := ParseGravity(v)
	if err != nil {
		logger.Warnf("prefs: widget %d: %v", id, err)
		return DefaultGravity
	}
	return g
}

func LoadFontSize(s Store, id int) float64 {
	v, ok := lookup(s, key(fontSizePrefix, id))
	if !ok {
		return DefaultFontSize
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		logger.Warnf("prefs: bad font size for widget %d: %q", id, v)
		return DefaultFontSize
	}
	return f
}

func lookupString(s Store, k, fallback string) string {
	v, ok := lookup(s, k)
	if !ok {
		return fallback
	}
	return v
}

// lookup treats a store failure like an absent key.
func lookup(s Store, k string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok, err := s.Lookup(k)
	if err != nil {
		logger.Errorf("prefs: lookup %s: %v", k, err)
		return "", false
	}
	return v, ok
}

func clampAlpha(a int) int {
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return a
}
