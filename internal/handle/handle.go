// Package handle persists the capability that grants the taskboard
// write access to a user-chosen mirror folder. The capability lives in
// the system keyring across sessions and carries an independently
// queryable permission state.
package handle

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/99designs/keyring"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Key is the keyring entry the mirror-folder capability is stored under.
const Key = "mirror-folder"

const serviceName = "taskboard"

// State is the live permission state of a handle.
type State string

const (
	// StateGranted means the folder exists and is currently writable.
	StateGranted State = "granted"
	// StatePrompt means the handle is kept but auto-writes are
	// suppressed until the user re-confirms the grant.
	StatePrompt State = "prompt"
	// StateDenied means the folder is gone or unusable; the handle
	// should be discarded.
	StateDenied State = "denied"
	// StateAbsent means no handle exists at all.
	StateAbsent State = "absent"
)

// Handle is the persisted, revocable capability referencing the
// user-chosen mirror folder.
type Handle struct {
	Path      string    `json:"path"`
	State     State     `json:"state"`
	GrantedAt time.Time `json:"grantedAt"`
}

// Store persists handles in the system keyring. Every method degrades
// to a neutral failure value instead of returning an error: when no
// keyring backend is available the store is a consistent no-op and the
// taskboard simply runs local-only.
type Store struct {
	ring keyring.Keyring
	fs   afero.Fs
	log  *log.Logger
}

// Open returns a Store backed by the system keyring, falling back to
// an encrypted file backend under fileDir. A keyring that fails to
// open yields a degraded store rather than an error.
func Open(fileDir string, fsys afero.Fs, logger *log.Logger) *Store {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("taskboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		logger.Warn("no keyring backend available, folder grants will not persist", "err", err)
		ring = nil
	}
	return NewStore(ring, fsys, logger)
}

// NewStore wraps an existing keyring. A nil ring produces a degraded
// no-op store.
func NewStore(ring keyring.Keyring, fsys afero.Fs, logger *log.Logger) *Store {
	return &Store{ring: ring, fs: fsys, log: logger}
}

// Put stores a handle under key, reporting success.
func (s *Store) Put(key string, h Handle) bool {
	if s.ring == nil {
		return false
	}
	data, err := json.Marshal(h)
	if err != nil {
		s.log.Warn("encoding handle", "err", err)
		return false
	}
	if err := s.ring.Set(keyring.Item{Key: key, Data: data}); err != nil {
		s.log.Warn("storing handle", "key", key, "err", err)
		return false
	}
	return true
}

// Get retrieves the handle stored under key, reporting absence for
// every failure mode.
func (s *Store) Get(key string) (Handle, bool) {
	if s.ring == nil {
		return Handle{}, false
	}
	item, err := s.ring.Get(key)
	if err != nil {
		return Handle{}, false
	}
	var h Handle
	if err := json.Unmarshal(item.Data, &h); err != nil || h.Path == "" {
		return Handle{}, false
	}
	return h, true
}

// Delete removes the handle stored under key, reporting success.
// Deleting an absent entry is success.
func (s *Store) Delete(key string) bool {
	if s.ring == nil {
		return false
	}
	err := s.ring.Remove(key)
	if err != nil && err != keyring.ErrKeyNotFound {
		s.log.Warn("deleting handle", "key", key, "err", err)
		return false
	}
	return true
}

// Query probes the live permission state of a handle: the stored
// grant alone is not enough, the folder must still exist and accept
// writes right now. A grant whose folder stopped accepting writes
// degrades to prompt; a folder that is gone entirely is denied.
func (s *Store) Query(h Handle) State {
	if h.Path == "" {
		return StateAbsent
	}
	info, err := s.fs.Stat(h.Path)
	if err != nil || !info.IsDir() {
		return StateDenied
	}
	if h.State != StateGranted {
		return StatePrompt
	}
	if !s.writable(h.Path) {
		return StatePrompt
	}
	return StateGranted
}

// Restore attempts the one start-up restoration of a persisted
// handle. A denied or broken handle is discarded and its keyring entry
// deleted, so an unusable capability is never retained across runs.
func (s *Store) Restore(key string) (Handle, bool) {
	h, ok := s.Get(key)
	if !ok {
		return Handle{}, false
	}

	switch s.Query(h) {
	case StateGranted:
		return h, true
	case StatePrompt:
		h.State = StatePrompt
		return h, true
	default:
		s.log.Warn("stored folder grant is no longer usable, discarding", "path", h.Path)
		s.Delete(key)
		return Handle{}, false
	}
}

// writable checks that the folder currently accepts writes by
// creating and removing a probe file.
func (s *Store) writable(dir string) bool {
	probe := filepath.Join(dir, ".taskboard-probe")
	if err := afero.WriteFile(s.fs, probe, []byte{}, 0o600); err != nil {
		return false
	}
	if err := s.fs.Remove(probe); err != nil {
		s.log.Debug("removing permission probe", "path", probe, "err", err)
	}
	return true
}
