package board

import (
	"context"
	"fmt"

	"github.com/ptran/taskboard/internal/model"
	"github.com/ptran/taskboard/internal/progress"
)

// MutateOptions controls a single pass through the mutation pipeline.
type MutateOptions struct {
	// SkipSnapshot suppresses the undo snapshot for internal writes
	// that should not be undoable.
	SkipSnapshot bool
}

// Change is what gets published to subscribers after a mutation:
// the new document plus progress recomputed from it.
type Change struct {
	Doc      model.Document
	Global   int
	Sections map[string]int
}

// Result reports the outcome of a mutation for UI feedback.
type Result struct {
	Doc      model.Document
	Global   int
	Mirrored bool
}

// Mutate is the single choke point for every state change. The
// sequence is fixed: re-read the current document, snapshot it for
// undo, apply the transform, persist locally (always), mirror
// (best-effort), then recompute and publish progress. A transform
// error rejects the mutation with prior state untouched; a local
// persistence failure is the one failure mode surfaced as a hard
// error.
//
// Each mutation re-reads the document immediately before modifying
// it. Two interleaved mutations can still race between that read and
// the write; with single-user usage that window is accepted rather
// than locked away.
func (s *Session) Mutate(ctx context.Context, transform func(model.Document) (model.Document, error), opts MutateOptions) (Result, error) {
	doc := s.Load(ctx)

	if !opts.SkipSnapshot {
		s.captureSnapshot(ctx, doc)
	}

	next, err := transform(doc)
	if err != nil {
		return Result{}, err
	}
	next = next.Normalized()

	raw, err := next.Encode()
	if err != nil {
		return Result{}, err
	}
	if err := s.store.SaveDocument(ctx, raw); err != nil {
		return Result{}, fmt.Errorf("saving board: %w", err)
	}

	mirrored := false
	if s.hasHandle {
		mirrored = s.mirror.Write(s.handle, next)
	}

	s.publish(next)

	return Result{Doc: next, Global: progress.Global(next), Mirrored: mirrored}, nil
}

// publish recomputes progress from the just-persisted document and
// hands it to the subscriber through the debounced notifier. Progress
// is always derived fresh here; nothing caches it across mutations.
func (s *Session) publish(doc model.Document) {
	sections := make(map[string]int, len(doc))
	for _, sec := range doc {
		sections[sec.ID] = progress.Section(doc, sec.ID)
	}
	s.notifier.publish(Change{Doc: doc, Global: progress.Global(doc), Sections: sections})
}
