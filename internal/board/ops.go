package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ptran/taskboard/internal/model"
)

// Named operations over the mutation pipeline. Each one is a thin
// transform; validation happens inside the transform so a rejected
// change leaves the stored document untouched.

// AddSection appends a new section. A title is required; the id is
// assigned here and never regenerated afterwards.
func (s *Session) AddSection(ctx context.Context, title, tag, color, due string) (model.Section, error) {
	if strings.TrimSpace(title) == "" {
		return model.Section{}, fmt.Errorf("section title must not be empty")
	}

	sec := model.Section{
		ID:    uuid.New().String(),
		Title: title,
		Tag:   tag,
		Color: color,
		Due:   due,
		Tasks: []model.Task{},
	}

	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		return append(doc, sec), nil
	}, MutateOptions{})
	if err != nil {
		return model.Section{}, err
	}
	return sec, nil
}

// EditSection updates a section's display fields in place. The id and
// task list are untouched.
func (s *Session) EditSection(ctx context.Context, id, title, tag, color, due string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("section title must not be empty")
	}

	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i := doc.SectionIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("section %q not found", id)
		}
		doc[i].Title = title
		doc[i].Tag = tag
		doc[i].Color = color
		doc[i].Due = due
		return doc, nil
	}, MutateOptions{})
	return err
}

// RemoveSection deletes a section and its tasks. Removing the
// reserved bootstrap section is allowed; the loader re-inserts a
// fresh one on the next load.
func (s *Session) RemoveSection(ctx context.Context, id string) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i := doc.SectionIndex(id)
		if i < 0 {
			return nil, fmt.Errorf("section %q not found", id)
		}
		return append(doc[:i], doc[i+1:]...), nil
	}, MutateOptions{})
	return err
}

// MoveSection reorders a section to position to. The permutation is
// persisted; section order is part of the document.
func (s *Session) MoveSection(ctx context.Context, id string, to int) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		from := doc.SectionIndex(id)
		if from < 0 {
			return nil, fmt.Errorf("section %q not found", id)
		}
		if to < 0 || to >= len(doc) {
			return nil, fmt.Errorf("position %d out of range", to)
		}
		sec := doc[from]
		doc = append(doc[:from], doc[from+1:]...)
		doc = append(doc[:to], append(model.Document{sec}, doc[to:]...)...)
		return doc, nil
	}, MutateOptions{})
	return err
}

// AddTask appends a task to a section. Duplicate text is allowed;
// tasks have no identity beyond their position.
func (s *Session) AddTask(ctx context.Context, sectionID, text string) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i := doc.SectionIndex(sectionID)
		if i < 0 {
			return nil, fmt.Errorf("section %q not found", sectionID)
		}
		doc[i].Tasks = append(doc[i].Tasks, model.Task{Text: text})
		return doc, nil
	}, MutateOptions{})
	return err
}

// ToggleTask flips a task's completion flag.
func (s *Session) ToggleTask(ctx context.Context, sectionID string, index int) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i, err := taskIndex(doc, sectionID, index)
		if err != nil {
			return nil, err
		}
		doc[i].Tasks[index].Done = !doc[i].Tasks[index].Done
		return doc, nil
	}, MutateOptions{})
	return err
}

// EditTask replaces a task's label.
func (s *Session) EditTask(ctx context.Context, sectionID string, index int, text string) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i, err := taskIndex(doc, sectionID, index)
		if err != nil {
			return nil, err
		}
		doc[i].Tasks[index].Text = text
		return doc, nil
	}, MutateOptions{})
	return err
}

// SetTaskDescription replaces a task's free-form description.
func (s *Session) SetTaskDescription(ctx context.Context, sectionID string, index int, desc string) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i, err := taskIndex(doc, sectionID, index)
		if err != nil {
			return nil, err
		}
		doc[i].Tasks[index].Desc = desc
		return doc, nil
	}, MutateOptions{})
	return err
}

// RemoveTask deletes a task from a section.
func (s *Session) RemoveTask(ctx context.Context, sectionID string, index int) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i, err := taskIndex(doc, sectionID, index)
		if err != nil {
			return nil, err
		}
		doc[i].Tasks = append(doc[i].Tasks[:index], doc[i].Tasks[index+1:]...)
		return doc, nil
	}, MutateOptions{})
	return err
}

// MoveTask reorders a task within its section.
func (s *Session) MoveTask(ctx context.Context, sectionID string, from, to int) error {
	_, err := s.Mutate(ctx, func(doc model.Document) (model.Document, error) {
		i, err := taskIndex(doc, sectionID, from)
		if err != nil {
			return nil, err
		}
		if to < 0 || to >= len(doc[i].Tasks) {
			return nil, fmt.Errorf("position %d out of range in section %q", to, sectionID)
		}
		t := doc[i].Tasks[from]
		tasks := append(doc[i].Tasks[:from], doc[i].Tasks[from+1:]...)
		doc[i].Tasks = append(tasks[:to], append([]model.Task{t}, tasks[to:]...)...)
		return doc, nil
	}, MutateOptions{})
	return err
}

// taskIndex resolves sectionID and validates the task index, returning
// the section's position in the document.
func taskIndex(doc model.Document, sectionID string, index int) (int, error) {
	i := doc.SectionIndex(sectionID)
	if i < 0 {
		return 0, fmt.Errorf("section %q not found", sectionID)
	}
	if index < 0 || index >= len(doc[i].Tasks) {
		return 0, fmt.Errorf("no task %d in section %q", index, sectionID)
	}
	return i, nil
}
