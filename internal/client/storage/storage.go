// Package storage implements the client's persistent key-value store:
// a single JSON file holding the session, the todo list and user
// preferences, optionally sealed at rest with an AEAD cipher.
//
// Every fault (missing file, corrupt contents, failed write) is logged
// and degraded to "value absent"; nothing here ever propagates an error
// to the caller.
package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Storage keys owned by this application.
const (
	// KeyUser holds the stored session user record.
	KeyUser = "todoApp_user"
	// KeyAuthState holds the boolean authenticated flag.
	KeyAuthState = "todoApp_authenticated"
	// KeyTodos holds the ordered todo list snapshot.
	KeyTodos = "todos"
	// KeyPreferences holds the free-form user preferences mapping.
	KeyPreferences = "todoApp_preferences"
)

// LocalStorage is a synchronous key-value store backed by one JSON file.
// Values are whole-value overwritten on every change, never patched.
type LocalStorage struct {
	path string
	aead cipher.AEAD
	log  *zap.Logger

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// New opens the store at path, loading whatever is already there.
// aead may be nil, in which case the file is kept as plain JSON.
// A missing or unreadable file yields an empty store, never an error.
func New(path string, aead cipher.AEAD, log *zap.Logger) *LocalStorage {
	if log == nil {
		panic("storage: nil logger")
	}
	ls := &LocalStorage{
		path:   path,
		aead:   aead,
		log:    log,
		values: make(map[string]json.RawMessage),
	}
	ls.load()
	return ls
}

// Get unmarshals the value stored under key into v. It reports whether
// a usable value was present; a corrupt value counts as absent.
func (ls *LocalStorage) Get(key string, v any) bool {
	ls.mu.Lock()
	raw, ok := ls.values[key]
	ls.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		ls.log.Warn("corrupt stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores v under key and writes the store back to disk.
func (ls *LocalStorage) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		ls.log.Warn("cannot serialize value", zap.String("key", key), zap.Error(err))
		return
	}
	ls.mu.Lock()
	ls.values[key] = raw
	ls.saveLocked()
	ls.mu.Unlock()
}

// Remove deletes the value under key, if any, and writes the store back.
func (ls *LocalStorage) Remove(key string) {
	ls.mu.Lock()
	delete(ls.values, key)
	ls.saveLocked()
	ls.mu.Unlock()
}

// Clear removes every key this store owns and writes the empty store back.
func (ls *LocalStorage) Clear() {
	ls.mu.Lock()
	ls.values = make(map[string]json.RawMessage)
	ls.saveLocked()
	ls.mu.Unlock()
}

// load reads and decodes the backing file into memory. All faults are
// logged and leave the store empty.
func (ls *LocalStorage) load() {
	data, err := os.ReadFile(ls.path)
	if err != nil {
		if !os.IsNotExist(err) {
			ls.log.Warn("cannot read storage file", zap.String("path", ls.path), zap.Error(err))
		}
		return
	}

	if ls.aead != nil {
		data, err = ls.open(data)
		if err != nil {
			ls.log.Warn("cannot decrypt storage file", zap.String("path", ls.path), zap.Error(err))
			return
		}
	}

	if err := json.Unmarshal(data, &ls.values); err != nil {
		ls.log.Warn("corrupt storage file", zap.String("path", ls.path), zap.Error(err))
		ls.values = make(map[string]json.RawMessage)
	}
}

// saveLocked writes the whole store to disk. Callers hold ls.mu.
func (ls *LocalStorage) saveLocked() {
	data, err := json.Marshal(ls.values)
	if err != nil {
		ls.log.Warn("cannot serialize storage", zap.Error(err))
		return
	}

	if ls.aead != nil {
		data, err = ls.seal(data)
		if err != nil {
			ls.log.Warn("cannot encrypt storage", zap.Error(err))
			return
		}
	}

	if err := os.WriteFile(ls.path, data, 0o600); err != nil {
		ls.log.Warn("cannot write storage file", zap.String("path", ls.path), zap.Error(err))
	}
}

// seal encrypts plain as base64(nonce || ciphertext).
func (ls *LocalStorage) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, ls.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := ls.aead.Seal(nonce, nonce, plain, nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(ct)))
	base64.StdEncoding.Encode(out, ct)
	return out, nil
}

// open reverses seal.
func (ls *LocalStorage) open(data []byte) ([]byte, error) {
	ct := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(ct, data)
	if err != nil {
		return nil, err
	}
	ct = ct[:n]
	if len(ct) < ls.aead.NonceSize() {
		return nil, errTooShort
	}
	nonce, ct := ct[:ls.aead.NonceSize()], ct[ls.aead.NonceSize():]
	return ls.aead.Open(nil, nonce, ct, nil)
}
