package board

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ptran/taskboard/internal/model"
)

// importSchema is the structural contract an import payload must meet
// before anything is persisted: an array of sections with string id
// and title, each carrying an array of tasks whose entries have a
// string text.
const importSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "tasks"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["text"],
          "properties": {"text": {"type": "string"}}
        }
      }
    }
  }
}`

var importValidator = jsonschema.MustCompileString("taskboard-import.json", importSchema)

// Import replaces the whole document with a user-supplied payload.
// The payload is validated in full before any persistence occurs; a
// single invalid item rejects the entire import with a descriptive
// error and zero state change. A successful import is undoable like
// any other mutation.
func (s *Session) Import(ctx context.Context, data []byte) (model.Document, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("import rejected: not valid JSON: %w", err)
	}
	if err := importValidator.Validate(payload); err != nil {
		return nil, fmt.Errorf("import rejected: %s", schemaFailure(err))
	}

	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("import rejected: %w", err)
	}

	res, err := s.Mutate(ctx, func(model.Document) (model.Document, error) {
		return doc, nil
	}, MutateOptions{})
	if err != nil {
		return nil, err
	}
	return res.Doc, nil
}

// schemaFailure digs the first leaf cause out of a jsonschema
// validation error so the user sees which item broke the contract
// instead of the root "doesn't validate" summary.
func schemaFailure(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("item %s: %s", loc, ve.Message)
}

// Export serializes the current document pretty-printed, the same
// shape the mirror file uses, so an export re-imports losslessly.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	return s.Load(ctx).EncodePretty()
}

// ExportFileName builds the download filename with the export
// timestamp embedded.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("taskboard-export-%s.json", now.Format("20060102-150405"))
}
