// Package progress derives completion percentages from a document.
// It is never a source of truth: callers recompute from current store
// content after every mutation instead of caching results.
package progress

import (
	"math"

	"github.com/ptran/taskboard/internal/model"
)

// Section returns the completion percentage for one section,
// round(100 * done / total). An unknown id or an empty section yields
// 0, never a division by zero.
func Section(doc model.Document, sectionID string) int {
	i := doc.SectionIndex(sectionID)
	if i < 0 {
		return 0
	}
	done, total := doc[i].Progress()
	return percent(done, total)
}

// Global returns the completion percentage across every task in the
// document. An empty document yields 0.
func Global(doc model.Document) int {
	var done, total int
	for _, s := range doc {
		d, t := s.Progress()
		done += d
		total += t
	}
	return percent(done, total)
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
