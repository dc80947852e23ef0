package model

// BootstrapSectionID is the fixed identifier of the reserved
// introductory section. That section must be present in every loaded
// document; the loader re-inserts it at the front when missing.
const BootstrapSectionID = "welcome"

// BootstrapSection returns a fresh copy of the reserved introductory
// section with its starter tasks.
func BootstrapSection() Section {
	return Section{
		ID:    BootstrapSectionID,
		Title: "Welcome",
		Tag:   "intro",
		Color: DefaultColor,
		Tasks: []Task{
			{Text: "Add a section for each area of your work"},
			{Text: "Toggle a task to mark it done"},
			{Text: "Grant a folder to keep a file backup of your board"},
		},
	}
}

// DefaultDocument is the document seeded on first run and substituted
// whenever the stored copy is missing or beyond repair.
func DefaultDocument() Document {
	return Document{BootstrapSection()}
}

// EnsureBootstrap re-inserts the reserved section at the front when it
// is absent. The reported flag tells the caller whether the document
// changed and needs re-persisting.
func (d Document) EnsureBootstrap() (Document, bool) {
	if d.SectionIndex(BootstrapSectionID) >= 0 {
		return d, false
	}
	return append(Document{BootstrapSection()}, d...), true
}
