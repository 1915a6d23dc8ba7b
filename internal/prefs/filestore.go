package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"memowidget/internal/logger"
)

// FileStore keeps every key in one JSON object on disk, optionally wrapped in
// a compressed and encrypted envelope. Writes go to a temporary file that is
// renamed over the original.
type FileStore struct {
	path string
	opts FileOptions

	mu     sync.RWMutex
	values map[string]string
}

// OpenFile loads the store at path. A missing file is an empty store.
func OpenFile(path string, opts FileOptions) (*FileStore, error) {
	s := &FileStore{path: filepath.Clean(path), opts: opts, values: map[string]string{}}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("prefs: %s does not exist, starting empty", s.path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", s.path, err)
	}
	payload, err := openEnvelope(b, opts.Password)
	if err != nil {
		return nil, err
	}
	values, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	s.values = values
	logger.Debugf("prefs: loaded %d keys from %s", len(values), s.path)
	return s, nil
}

// InspectFile reports how the file at path is wrapped without decrypting it.
func InspectFile(path string) (EnvelopeInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return inspectEnvelope(b)
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Lookup(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Edit(fn func(tx Tx)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneValues(s.values)
	fn(mapTx(next))
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *FileStore) write(values map[string]string) error {
	payload, err := encodePayload(values)
	if err != nil {
		return err
	}
	blob, err := sealEnvelope(payload, s.opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func encodePayload(values map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []byte(`{}`)
	for _, k := range keys {
		var err error
		out, err = sjson.SetBytes(out, escapeKey(k), values[k])
		if err != nil {
			return nil, fmt.Errorf("prefs: encode %q: %w", k, err)
		}
	}
	return out, nil
}

func decodePayload(b []byte) (map[string]string, error) {
	if !gjson.ValidBytes(b) {
		return nil, ErrCorruptPayload
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return nil, ErrCorruptPayload
	}
	values := map[string]string{}
	root.ForEach(func(k, v gjson.Result) bool {
		values[k.String()] = v.String()
		return true
	})
	return values, nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`)

func escapeKey(k string) string {
	return keyEscaper.Replace(k)
}
