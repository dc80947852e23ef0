package progress

import (
	"testing"

	"github.com/ptran/taskboard/internal/model"
)

func section(id string, done, open int) model.Section {
	s := model.Section{ID: id, Title: id, Tasks: []model.Task{}}
	for i := 0; i < done; i++ {
		s.Tasks = append(s.Tasks, model.Task{Text: "d", Done: true})
	}
	for i := 0; i < open; i++ {
		s.Tasks = append(s.Tasks, model.Task{Text: "o"})
	}
	return s
}

func TestSection(t *testing.T) {
	tests := []struct {
		name       string
		done, open int
		want       int
	}{
		{"one of four", 1, 3, 25},
		{"all done", 3, 0, 100},
		{"none done", 0, 5, 0},
		{"empty section is zero, not NaN", 0, 0, 0},
		{"rounds half up", 1, 2, 33},
		{"rounds two thirds", 2, 1, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.Document{section("s", tt.done, tt.open)}
			if got := Section(doc, "s"); got != tt.want {
				t.Errorf("Section: got %d, want %d", got, tt.want)
			}
			// With a single section the global percentage agrees.
			if got := Global(doc); got != tt.want {
				t.Errorf("Global: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSectionUnknownID(t *testing.T) {
	doc := model.Document{section("s", 1, 1)}
	if got := Section(doc, "missing"); got != 0 {
		t.Errorf("unknown section: got %d, want 0", got)
	}
}

func TestGlobal(t *testing.T) {
	doc := model.Document{
		section("a", 1, 3),
		section("b", 1, 0),
		section("c", 0, 0),
	}
	// 2 done of 5 total.
	if got := Global(doc); got != 40 {
		t.Errorf("Global: got %d, want 40", got)
	}
}

func TestGlobalEmptyDocument(t *testing.T) {
	if got := Global(model.Document{}); got != 0 {
		t.Errorf("empty document: got %d, want 0", got)
	}
	if got := Global(model.Document{section("a", 0, 0)}); got != 0 {
		t.Errorf("no tasks at all: got %d, want 0", got)
	}
}
