package prefs

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	envelopeMagic     = "MEMOWIDGET_PREFS"
	envelopeVersionV1 = uint16(1)
	envelopeFlagComp  = uint16(1 << 0)
	envelopeFlagEnc   = uint16(1 << 1)
	envelopeSaltSize  = 16
	envelopeNonceSize = 12
	envelopeHeader    = len(envelopeMagic) + 2 + 2 + envelopeSaltSize + envelopeNonceSize + 8
	kdfIterations     = 200000
)

// FileOptions controls how a FileStore wraps its payload on disk.
type FileOptions struct {
	Compression bool
	// Password enables AES-GCM encryption when non-empty.
	Password string
}

func (o FileOptions) encrypted() bool {
	return strings.TrimSpace(o.Password) != ""
}

// EnvelopeInfo describes how a stored file is wrapped.
type EnvelopeInfo struct {
	Wrapped    bool
	Compressed bool
	Encrypted  bool
	Version    uint16
}

func isEnvelope(b []byte) bool {
	return len(b) >= len(envelopeMagic) && string(b[:len(envelopeMagic)]) == envelopeMagic
}

func inspectEnvelope(b []byte) (EnvelopeInfo, error) {
	info := EnvelopeInfo{}
	if !isEnvelope(b) {
		return info, nil
	}
	if len(b) < envelopeHeader {
		return info, ErrInvalidEnvelope
	}
	off := len(envelopeMagic)
	version := binary.LittleEndian.Uint16(b[off : off+2])
	if version != envelopeVersionV1 {
		return info, fmt.Errorf("%w: envelope version %d", ErrUnsupportedVersion, version)
	}
	flags := binary.LittleEndian.Uint16(b[off+2 : off+4])
	info.Wrapped = true
	info.Compressed = flags&envelopeFlagComp != 0
	info.Encrypted = flags&envelopeFlagEnc != 0
	info.Version = version
	return info, nil
}

// sealEnvelope returns payload unchanged when neither compression nor
// encryption is requested.
func sealEnvelope(payload []byte, opts FileOptions) ([]byte, error) {
	if !opts.Compression && !opts.encrypted() {
		return payload, nil
	}

	flags := uint16(0)
	if opts.Compression {
		flags |= envelopeFlagComp
		var err error
		payload, err = compressBytes(payload)
		if err != nil {
			return nil, err
		}
	}

	salt := make([]byte, envelopeSaltSize)
	nonce := make([]byte, envelopeNonceSize)
	if opts.encrypted() {
		flags |= envelopeFlagEnc
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, err
		}
		gcm, err := newGCM(opts.Password, salt)
		if err != nil {
			return nil, err
		}
		payload = gcm.Seal(nil, nonce, payload, nil)
	}

	off := len(envelopeMagic)
	out := make([]byte, envelopeHeader, envelopeHeader+len(payload))
	copy(out[:off], envelopeMagic)
	binary.LittleEndian.PutUint16(out[off:off+2], envelopeVersionV1)
	binary.LittleEndian.PutUint16(out[off+2:off+4], flags)
	copy(out[off+4:off+4+envelopeSaltSize], salt)
	copy(out[off+4+envelopeSaltSize:off+4+envelopeSaltSize+envelopeNonceSize], nonce)
	binary.LittleEndian.PutUint64(out[off+4+envelopeSaltSize+envelopeNonceSize:], uint64(len(payload)))
	return append(out, payload...), nil
}

// openEnvelope reverses sealEnvelope. Unwrapped input is returned as is.
func openEnvelope(b []byte, password string) ([]byte, error) {
	info, err := inspectEnvelope(b)
	if err != nil {
		return nil, err
	}
	if !info.Wrapped {
		return b, nil
	}
	off := len(envelopeMagic)
	salt := b[off+4 : off+4+envelopeSaltSize]
	nonce := b[off+4+envelopeSaltSize : off+4+envelopeSaltSize+envelopeNonceSize]
	payloadLen := binary.LittleEndian.Uint64(b[off+4+envelopeSaltSize+envelopeNonceSize:])
	if uint64(len(b)-envelopeHeader) != payloadLen {
		return nil, ErrInvalidEnvelope
	}
	payload := append([]byte(nil), b[envelopeHeader:]...)

	if info.Encrypted {
		if strings.TrimSpace(password) == "" {
			return nil, ErrPasswordRequired
		}
		gcm, err := newGCM(password, salt)
		if err != nil {
			return nil, err
		}
		payload, err = gcm.Open(nil, nonce, payload, nil)
		if err != nil {
			return nil, ErrInvalidPassword
		}
	}
	if info.Compressed {
		payload, err = decompressBytes(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
		}
	}
	return payload, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func compressBytes(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(in); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressBytes(in []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
