package board

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/ptran/taskboard/internal/mirror"
	"github.com/ptran/taskboard/internal/model"
	"github.com/ptran/taskboard/internal/progress"
)

func TestAddSectionRequiresTitle(t *testing.T) {
	s, st, _ := newTestSession(t, Options{})
	ctx := context.Background()
	s.Load(ctx)

	before, _, _ := st.LoadDocument(ctx)

	if _, err := s.AddSection(ctx, "   ", "", "", ""); err == nil {
		t.Fatal("blank title should be rejected")
	}

	after, _, _ := st.LoadDocument(ctx)
	if string(before) != string(after) {
		t.Error("rejected mutation must leave the store untouched")
	}
}

func TestToggleTaskUpdatesProgress(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	ctx := context.Background()

	sec, err := s.AddSection(ctx, "Sprint", "work", "", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"a", "b", "c", "d"} {
		if err := s.AddTask(ctx, sec.ID, text); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ToggleTask(ctx, sec.ID, 0); err != nil {
		t.Fatal(err)
	}

	doc := s.Load(ctx)
	if got := progress.Section(doc, sec.ID); got != 25 {
		t.Errorf("section progress: got %d, want 25", got)
	}
	// Only the new section has tasks besides the bootstrap ones, so
	// recompute over the whole board too.
	i := doc.SectionIndex(sec.ID)
	if !doc[i].Tasks[0].Done {
		t.Error("toggle not persisted")
	}
}

func TestToggleTwiceRestoresOpen(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	ctx := context.Background()

	sec, _ := s.AddSection(ctx, "S", "", "", "")
	s.AddTask(ctx, sec.ID, "t")
	s.ToggleTask(ctx, sec.ID, 0)
	s.ToggleTask(ctx, sec.ID, 0)

	doc := s.Load(ctx)
	if doc[doc.SectionIndex(sec.ID)].Tasks[0].Done {
		t.Error("double toggle should restore the open state")
	}
}

func TestMutationsMirrorBestEffort(t *testing.T) {
	s, _, fsys := newTestSession(t, Options{})
	ctx := context.Background()
	grantTestFolder(t, s, fsys)

	sec, err := s.AddSection(ctx, "Mirrored", "", "", "")
	if err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fsys, filepath.Join("/mirror", mirror.FileName))
	if err != nil {
		t.Fatalf("mirror file missing after mutation: %v", err)
	}
	doc, err := model.ParseDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	if doc.SectionIndex(sec.ID) < 0 {
		t.Error("mutation not reflected in the mirror file")
	}
}

func TestMutationSucceedsWhenMirrorRevoked(t *testing.T) {
	s, _, fsys := newTestSession(t, Options{})
	ctx := context.Background()
	grantTestFolder(t, s, fsys)

	// The folder disappears after the grant.
	fsys.RemoveAll("/mirror")

	sec, err := s.AddSection(ctx, "LocalOnly", "", "", "")
	if err != nil {
		t.Fatalf("local save must not fail when the mirror is unusable: %v", err)
	}
	if doc := s.Load(ctx); doc.SectionIndex(sec.ID) < 0 {
		t.Error("local persistence lost the mutation")
	}
}

func TestUndoRestoresPreviousBoard(t *testing.T) {
	s, _, _ := newTestSession(t, Options{})
	ctx := context.Background()

	if s.CanUndo(ctx) {
		t.Error("nothing to undo on a fresh board")
	}

	sec, _ := s.AddSection(ctx, "Keep", "", "", "")
	if err := s.RemoveSection(ctx, sec.ID); err != nil {
		t.Fatal(err)
	}

	if !s.CanUndo(ctx) {
		t.Fatal("undo snapshot should exist after a mutation")
	}
	doc, err := s.Undo(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.SectionIndex(sec.ID) < 0 {
		t.Error("undo did not restore the removed section")
	}

	// One slot only.
	if _, err := s.Undo(ctx); err == nil {
		t.Error("second undo should fail")
	}
}

func TestLoaderRepairsAreNotUndoable(t *testing.T) {
	s, st, _ := newTestSession(t, Options{})
	ctx := context.Background()

	// Seeding defaults and re-inserting the bootstrap section are
	// internal writes; they must not populate the undo slot.
	stored := model.Document{{ID: "work", Title: "Work", Tasks: []model.Task{}}}
	raw, _ := stored.Encode()
	st.SaveDocument(ctx, raw)
	s.Load(ctx)

	if s.CanUndo(ctx) {
		t.Error("loader repair populated the undo slot")
	}
}

func TestChangeNotificationCarriesFreshProgress(t *testing.T) {
	var last Change
	s, _, _ := newTestSession(t, Options{
		OnChange: func(c Change) { last = c },
	})
	ctx := context.Background()

	sec, _ := s.AddSection(ctx, "S", "", "", "")
	s.AddTask(ctx, sec.ID, "a")
	s.AddTask(ctx, sec.ID, "b")
	s.ToggleTask(ctx, sec.ID, 0)

	if last.Sections[sec.ID] != 50 {
		t.Errorf("published section progress: got %d, want 50", last.Sections[sec.ID])
	}
	if last.Doc.SectionIndex(sec.ID) < 0 {
		t.Error("published document is stale")
	}
}
