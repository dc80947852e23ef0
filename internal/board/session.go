// Package board ties the stores together: one session object owns the
// local document store, the handle store, and the mirror, and routes
// every state change through a single mutation pipeline.
package board

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ptran/taskboard/internal/handle"
	"github.com/ptran/taskboard/internal/mirror"
	"github.com/ptran/taskboard/internal/store"
)

// Options configures a session.
type Options struct {
	Store   *store.SQLiteStore
	Handles *handle.Store
	Mirror  *mirror.Mirror
	Logger  *log.Logger

	// OnChange, when set, receives a Change after every successful
	// mutation. Deliveries are coalesced by NotifyDebounce.
	OnChange func(Change)

	// NotifyDebounce is the quiescence delay before OnChange fires.
	// Zero delivers synchronously.
	NotifyDebounce time.Duration
}

// Session is the explicit home of the state the original design kept
// in ambient module globals: the restored handle and the pending
// change notification, plus ownership of the one-slot undo.
type Session struct {
	store   *store.SQLiteStore
	handles *handle.Store
	mirror  *mirror.Mirror
	log     *log.Logger

	handle    handle.Handle
	hasHandle bool

	notifier *notifier
}

// NewSession builds a session. It performs no I/O; call Restore to
// run the start-up handle restoration.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		store:    opts.Store,
		handles:  opts.Handles,
		mirror:   opts.Mirror,
		log:      logger,
		notifier: newNotifier(opts.NotifyDebounce, opts.OnChange),
	}
}

// Restore runs the one start-up restoration of the persisted folder
// handle. When the restored grant is live, a load is attempted right
// away so a fresher mirror file takes effect before the first read.
// Restoration failures are background noise, not user-facing errors.
func (s *Session) Restore(ctx context.Context) {
	h, ok := s.handles.Restore(handle.Key)
	if !ok {
		return
	}
	s.handle = h
	s.hasHandle = true

	if s.handles.Query(h) == handle.StateGranted {
		s.Load(ctx)
	}
}

// Handle returns the session's folder handle, if one is held.
func (s *Session) Handle() (handle.Handle, bool) {
	return s.handle, s.hasHandle
}

// GrantFolder records a user grant for path as the mirror folder.
// Unlike background restoration this is an explicit user action, so a
// folder that cannot be used is a real error. The document is mirrored
// immediately after a successful grant.
func (s *Session) GrantFolder(ctx context.Context, path string) error {
	h := handle.Handle{Path: path, State: handle.StateGranted, GrantedAt: time.Now().UTC()}
	if state := s.handles.Query(h); state != handle.StateGranted {
		return fmt.Errorf("folder %s is not writable (permission state %s)", path, state)
	}

	s.handle = h
	s.hasHandle = true
	if !s.handles.Put(handle.Key, h) {
		s.log.Warn("folder grant will not survive this session")
	}

	s.mirror.Write(h, s.Load(ctx))
	return nil
}

// ConfirmFolder re-confirms a handle that degraded to the prompt
// state, restoring automatic mirror writes.
func (s *Session) ConfirmFolder(ctx context.Context) error {
	if !s.hasHandle {
		return fmt.Errorf("no folder has been granted")
	}
	return s.GrantFolder(ctx, s.handle.Path)
}

// RevokeFolder drops the handle and its persisted entry. Local
// persistence is unaffected.
func (s *Session) RevokeFolder() {
	s.handle = handle.Handle{}
	s.hasHandle = false
	s.handles.Delete(handle.Key)
}

// LastSaved reports when the document store last persisted the
// document, for display only.
func (s *Session) LastSaved(ctx context.Context) (time.Time, bool) {
	return s.store.LastUpdated(ctx)
}

// Close flushes any pending change notification.
func (s *Session) Close() {
	s.notifier.stop()
}

// MirrorState reports the live permission state of the folder grant,
// re-queried on every call.
func (s *Session) MirrorState() handle.State {
	return s.mirrorState()
}

// mirrorState returns the live permission state of the session handle,
// or absent when none is held.
func (s *Session) mirrorState() handle.State {
	if !s.hasHandle {
		return handle.StateAbsent
	}
	return s.handles.Query(s.handle)
}
