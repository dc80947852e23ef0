package model

// DefaultColor is the neutral accent applied to sections that carry
// no explicit color.
const DefaultColor = "#8a8f98"

// Section is a named, ordered group of tasks. The task order is
// meaningful and persists exactly as displayed.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag,omitempty"`
	Color string `json:"color,omitempty"`
	Due   string `json:"due,omitempty"`
	Tasks []Task `json:"tasks"`
}

// NormalizeSection coerces an arbitrary decoded JSON value into a
// Section. Tasks is always a non-nil slice afterwards, even when the
// stored value was missing, null, or not an array; each element is
// repaired through NormalizeTask.
func NormalizeSection(v any) Section {
	m, ok := v.(map[string]any)
	if !ok {
		return Section{Color: DefaultColor, Tasks: []Task{}}
	}

	s := Section{
		ID:    coerceString(m["id"]),
		Title: coerceString(m["title"]),
		Tag:   coerceString(m["tag"]),
		Color: coerceString(m["color"]),
		Due:   coerceString(m["due"]),
		Tasks: []Task{},
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}

	raw, ok := m["tasks"].([]any)
	if !ok {
		return s
	}
	for _, t := range raw {
		s.Tasks = append(s.Tasks, NormalizeTask(t))
	}
	return s
}

// Progress counts completed tasks against the section total.
func (s Section) Progress() (done, total int) {
	for _, t := range s.Tasks {
		if t.Done {
			done++
		}
	}
	return done, len(s.Tasks)
}
