package board

import (
	"context"
	"fmt"

	"github.com/ptran/taskboard/internal/model"
)

// captureSnapshot retains the serialized pre-mutation document in the
// single undo slot. Every snapshotting mutation overwrites the
// previous copy; history is exactly one step deep. A snapshot that
// fails to persist never blocks the mutation itself.
func (s *Session) captureSnapshot(ctx context.Context, doc model.Document) {
	raw, err := doc.Encode()
	if err != nil {
		s.log.Warn("encoding undo snapshot", "err", err)
		return
	}
	if err := s.store.SaveSnapshot(ctx, raw); err != nil {
		s.log.Warn("retaining undo snapshot", "err", err)
	}
}

// CanUndo reports whether an undo snapshot is held.
func (s *Session) CanUndo(ctx context.Context) bool {
	_, ok, err := s.store.LoadSnapshot(ctx)
	return err == nil && ok
}

// Undo restores the document captured before the most recent
// mutation. The restore itself runs through the pipeline (without
// re-snapshotting), so it persists locally, mirrors best-effort, and
// republishes progress like any other change. The slot is cleared
// afterwards; undo is one step only.
func (s *Session) Undo(ctx context.Context) (model.Document, error) {
	raw, ok, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("nothing to undo")
	}

	restored, err := model.ParseDocument(raw)
	if err != nil {
		s.store.DeleteSnapshot(ctx)
		return nil, fmt.Errorf("undo snapshot is unusable: %w", err)
	}

	res, err := s.Mutate(ctx, func(model.Document) (model.Document, error) {
		return restored, nil
	}, MutateOptions{SkipSnapshot: true})
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteSnapshot(ctx); err != nil {
		s.log.Warn("clearing undo snapshot", "err", err)
	}
	return res.Doc, nil
}
