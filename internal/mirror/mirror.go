// Package mirror keeps a best-effort file copy of the document inside
// the user-granted folder. The mirror never blocks or fails the
// primary store: a write that cannot proceed is silently skipped and
// at most logged.
package mirror

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/ptran/taskboard/internal/handle"
	"github.com/ptran/taskboard/internal/model"
)

// FileName is the fixed name of the mirror file inside the granted
// folder. Every write fully replaces its contents.
const FileName = "taskboard.json"

// Mirror reads and writes the external file copy of the document.
type Mirror struct {
	fs      afero.Fs
	handles *handle.Store
	log     *log.Logger
}

// New returns a mirror over the given filesystem, using the handle
// store for the live permission re-query before every write.
func New(fsys afero.Fs, handles *handle.Store, logger *log.Logger) *Mirror {
	return &Mirror{fs: fsys, handles: handles, log: logger}
}

// Write serializes the document pretty-printed and replaces the mirror
// file. Permission is re-queried first; anything other than a live
// grant skips the write without prompting and without error. The
// report says whether the file was actually written.
func (m *Mirror) Write(h handle.Handle, doc model.Document) bool {
	if state := m.handles.Query(h); state != handle.StateGranted {
		m.log.Debug("mirror write skipped", "state", state)
		return false
	}

	data, err := doc.EncodePretty()
	if err != nil {
		m.log.Warn("encoding mirror file", "err", err)
		return false
	}

	path := filepath.Join(h.Path, FileName)
	if err := afero.WriteFile(m.fs, path, data, 0o644); err != nil {
		m.log.Warn("writing mirror file", "path", path, "err", err)
		return false
	}
	return true
}

// Read returns the document stored in the mirror file. A missing file
// means no mirror data yet, not an error; so does a file that fails to
// parse as a document.
func (m *Mirror) Read(h handle.Handle) (model.Document, bool) {
	if h.Path == "" {
		return nil, false
	}

	path := filepath.Join(h.Path, FileName)
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, false
	}

	doc, err := model.ParseDocument(data)
	if err != nil {
		m.log.Warn("mirror file does not parse as a document, ignoring", "path", path, "err", err)
		return nil, false
	}
	return doc, true
}
