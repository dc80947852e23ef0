package board

import (
	"context"
	"fmt"

	"github.com/ptran/taskboard/internal/handle"
	"github.com/ptran/taskboard/internal/model"
)

// Load is the single entry point every consumer uses to obtain the
// current document. It reconciles the document store, the mirror, and
// the built-in defaults, repairing structural drift along the way.
// Load never fails: any unexpected error is logged and answered with
// a fresh defaults document, so the caller always has a usable board.
func (s *Session) Load(ctx context.Context) model.Document {
	doc, err := s.load(ctx)
	if err != nil {
		s.log.Error("loading board, substituting defaults", "err", err)
		doc = model.DefaultDocument()
		s.persistLocal(ctx, doc)
	}
	return doc
}

func (s *Session) load(ctx context.Context) (doc model.Document, err error) {
	// Top-level boundary for anything unexpected in the procedure
	// below; the caller substitutes defaults.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("unexpected load failure: %v", r)
		}
	}()

	raw, found, err := s.store.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case !found:
		// First run: seed with defaults and persist.
		doc = model.DefaultDocument()
		s.persistLocal(ctx, doc)
	default:
		doc, err = model.ParseDocument(raw)
		if err != nil {
			// Corrupt store content self-heals: reset to defaults,
			// persist the reset, carry on. Never a blocking error.
			s.log.Warn("stored board is corrupt, resetting to defaults", "err", err)
			doc = model.DefaultDocument()
			s.persistLocal(ctx, doc)
			err = nil
		}
	}

	// Mirror wins over local on load: when a live grant exists and the
	// mirror file parses, its content replaces the store result and the
	// store is rewritten to match. No timestamp comparison.
	if s.mirrorState() == handle.StateGranted {
		if mirrored, ok := s.mirror.Read(s.handle); ok {
			doc = mirrored
			s.persistLocal(ctx, doc)
		}
	}

	if repaired, inserted := doc.EnsureBootstrap(); inserted {
		doc = repaired
		s.persistLocal(ctx, doc)
	}

	return doc.Normalized(), nil
}

// persistLocal writes the document to the local store outside the
// mutation pipeline, for loader repairs that must not touch the undo
// snapshot. Failures here are logged, not surfaced: the in-memory
// document is still usable.
func (s *Session) persistLocal(ctx context.Context, doc model.Document) {
	raw, err := doc.Encode()
	if err != nil {
		s.log.Error("encoding board", "err", err)
		return
	}
	if err := s.store.SaveDocument(ctx, raw); err != nil {
		s.log.Error("persisting board repair", "err", err)
	}
}
