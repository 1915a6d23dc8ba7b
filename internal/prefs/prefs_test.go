package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Lookup(string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingStore) Edit(func(Tx)) error { return errors.New("disk on fire") }

func TestLoadUnknownWidgetReturnsDefaults(t *testing.T) {
	w := Load(NewMemoryStore(), 42)
	assert.Equal(t, DefaultHint, w.Title)
	assert.Equal(t, 0, w.Alpha)
	assert.Equal(t, uint32(0xFF000000), w.BgColor)
	assert.Equal(t, TopStart, w.Gravity)
	assert.Equal(t, 16.0, w.FontSize)
	assert.Empty(t, w.UndoStack)
	assert.Empty(t, w.RedoStack)
	assert.Equal(t, Defaults(), w)
}

func TestStoreErrorsBecomeDefaults(t *testing.T) {
	assert.Equal(t, Defaults(), Load(failingStore{}, 1))
	assert.Equal(t, Defaults(), Load(nil, 1))

	err := Save(failingStore{}, 1, Defaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget 1")
}

func TestUnparsableValuesBecomeDefaults(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Edit(func(tx Tx) {
		tx.Put("alpha_3", "opaque")
		tx.Put("bgcolor_3", "black")
		tx.Put("gravity_3", "sideways")
		tx.Put("fontsize_3", "-2")
	}))
	w := Load(s, 3)
	assert.Equal(t, DefaultAlpha, w.Alpha)
	assert.Equal(t, DefaultBgColor, w.BgColor)
	assert.Equal(t, DefaultGravity, w.Gravity)
	assert.Equal(t, DefaultFontSize, w.FontSize)
}

func TestAlphaIsClampedAndSignedColorsWrap(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Edit(func(tx Tx) {
		tx.Put("alpha_5", "900")
		tx.Put("bgcolor_5", "-16777216")
	}))
	assert.Equal(t, 255, LoadAlpha(s, 5))
	assert.Equal(t, uint32(0xFF000000), LoadBgColor(s, 5))
}

func TestSaveLoadAndPurge(t *testing.T) {
	s := NewMemoryStore()
	w := Widget{
		Title:     `{"text":"hi","spans":[]}`,
		Alpha:     128,
		BgColor:   0xFF336699,
		Gravity:   BottomEnd,
		FontSize:  18.5,
		UndoStack: "u",
		RedoStack: "r",
	}
	require.NoError(t, Save(s, 7, w))
	require.NoError(t, Save(s, 8, Defaults()))
	require.NoError(t, s.Edit(func(tx Tx) { tx.Put("fontname_7", "serif") }))

	assert.Equal(t, w, Load(s, 7))

	require.NoError(t, Purge(s, 7))
	for _, k := range Keys(7) {
		_, ok, err := s.Lookup(k)
		require.NoError(t, err)
		assert.False(t, ok, "key %s survived purge", k)
	}
	assert.Equal(t, Defaults(), Load(s, 7))
	assert.Equal(t, 7, s.Len(), "other widgets are untouched")
}

func TestFileStoreRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		opts FileOptions
	}{
		{"plain", FileOptions{}},
		{"compressed", FileOptions{Compression: true}},
		{"encrypted", FileOptions{Compression: true, Password: "hunter2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "prefs.dat")
			s, err := OpenFile(path, tc.opts)
			require.NoError(t, err)

			w := Defaults()
			w.Title = `{"text":"a.b*c?","spans":[]}`
			w.Gravity = Center
			require.NoError(t, Save(s, 1, w))

			info, err := InspectFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.opts.Compression, info.Compressed)
			assert.Equal(t, tc.opts.Password != "", info.Encrypted)

			reopened, err := OpenFile(path, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, w, Load(reopened, 1))

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temporary file left behind")
		})
	}
}

func TestFileStorePasswordErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.dat")
	s, err := OpenFile(path, FileOptions{Password: "right"})
	require.NoError(t, err)
	require.NoError(t, Save(s, 1, Defaults()))

	_, err = OpenFile(path, FileOptions{})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	_, err = OpenFile(path, FileOptions{Password: "wrong"})
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestFileStoreRejectsCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.dat")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0o600))
	_, err := OpenFile(garbage, FileOptions{})
	if !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}

	truncated := filepath.Join(dir, "truncated.dat")
	require.NoError(t, os.WriteFile(truncated, []byte(envelopeMagic+"\x01\x00"), 0o600))
	_, err = OpenFile(truncated, FileOptions{})
	if !errors.Is(err, ErrInvalidEnvelope) {
		t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
	}
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "absent.dat"), FileOptions{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), Load(s, 1))
}

func TestParseGravity(t *testing.T) {
	for _, g := range Gravities() {
		parsed, err := ParseGravity(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	g, err := ParseGravity("Bottom-Center")
	require.NoError(t, err)
	assert.Equal(t, BottomCenter, g)
	assert.Equal(t, 2, g.Row())
	assert.Equal(t, 1, g.Column())

	_, err = ParseGravity("middle")
	assert.Error(t, err)
}
