package model

// Task is a single checklist entry within a section.
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
	Desc string `json:"desc"`
}

// NormalizeTask coerces an arbitrary decoded JSON value into a Task.
// It is total: whatever shape the stored data had, the result is a
// task with exactly the three known fields. Unknown fields are
// dropped, missing or mistyped fields fall back to their defaults.
func NormalizeTask(v any) Task {
	m, ok := v.(map[string]any)
	if !ok {
		return Task{}
	}
	return Task{
		Text: coerceString(m["text"]),
		Done: coerceBool(m["done"]),
		Desc: coerceString(m["desc"]),
	}
}
