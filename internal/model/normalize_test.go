package model

import (
	"reflect"
	"testing"
)

func TestParseDocumentRepairsTasks(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Task
	}{
		{
			name: "numeric text is stringified",
			data: `[{"id":"a","title":"A","tasks":[{"text":42}]}]`,
			want: []Task{{Text: "42", Done: false, Desc: ""}},
		},
		{
			name: "missing fields default",
			data: `[{"id":"a","title":"A","tasks":[{"text":"t"}]}]`,
			want: []Task{{Text: "t", Done: false, Desc: ""}},
		},
		{
			name: "unknown fields dropped, non-bool done is false",
			data: `[{"id":"a","title":"A","tasks":[{"text":"t","done":"yes","extra":1}]}]`,
			want: []Task{{Text: "t", Done: false, Desc: ""}},
		},
		{
			name: "tasks null becomes empty",
			data: `[{"id":"a","title":"A","tasks":null}]`,
			want: []Task{},
		},
		{
			name: "tasks missing becomes empty",
			data: `[{"id":"a","title":"A"}]`,
			want: []Task{},
		},
		{
			name: "non-object task collapses to defaults",
			data: `[{"id":"a","title":"A","tasks":["huh"]}]`,
			want: []Task{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseDocument failed: %v", err)
			}
			if len(doc) != 1 {
				t.Fatalf("sections: got %d, want 1", len(doc))
			}
			if !reflect.DeepEqual(doc[0].Tasks, tt.want) {
				t.Errorf("tasks: got %#v, want %#v", doc[0].Tasks, tt.want)
			}
		})
	}
}

func TestParseDocumentRejectsNonArrays(t *testing.T) {
	for _, data := range []string{`null`, `{}`, `"hi"`, `42`, `not json`} {
		if _, err := ParseDocument([]byte(data)); err == nil {
			t.Errorf("ParseDocument(%q): expected error", data)
		}
	}
}

func TestParseDocumentSectionDefaults(t *testing.T) {
	doc, err := ParseDocument([]byte(`[{"id":7,"title":"A","tasks":[]}]`))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc[0].ID != "7" {
		t.Errorf("id: got %q, want %q", doc[0].ID, "7")
	}
	if doc[0].Color != DefaultColor {
		t.Errorf("color: got %q, want default %q", doc[0].Color, DefaultColor)
	}
}

func TestNormalizedRepairsHandBuiltSections(t *testing.T) {
	doc := Document{{ID: "a", Title: "A"}}.Normalized()
	if doc[0].Tasks == nil {
		t.Error("Tasks should never be nil after Normalized")
	}
	if doc[0].Color != DefaultColor {
		t.Errorf("color: got %q, want default %q", doc[0].Color, DefaultColor)
	}
}

func TestEnsureBootstrap(t *testing.T) {
	doc := Document{{ID: "other", Title: "Other", Tasks: []Task{}}}

	repaired, inserted := doc.EnsureBootstrap()
	if !inserted {
		t.Fatal("expected bootstrap insertion")
	}
	if repaired[0].ID != BootstrapSectionID {
		t.Errorf("bootstrap not at front: got %q", repaired[0].ID)
	}
	if len(repaired) != 2 {
		t.Fatalf("sections: got %d, want 2", len(repaired))
	}

	again, inserted := repaired.EnsureBootstrap()
	if inserted {
		t.Error("second EnsureBootstrap should be a no-op")
	}
	if len(again) != 2 {
		t.Errorf("sections after no-op: got %d, want 2", len(again))
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := Document{{
		ID: "a", Title: "A", Tag: "work", Color: "#123456", Due: "2026-09-01",
		Tasks: []Task{{Text: "t", Done: true, Desc: "d"}},
	}}

	for _, encode := range []func() ([]byte, error){orig.Encode, orig.EncodePretty} {
		data, err := encode()
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		doc, err := ParseDocument(data)
		if err != nil {
			t.Fatalf("ParseDocument failed: %v", err)
		}
		if !reflect.DeepEqual(doc, orig) {
			t.Errorf("round trip: got %#v, want %#v", doc, orig)
		}
	}
}
