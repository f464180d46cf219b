package report

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/marispinelli3322/tutor-copilot/internal/model"
	"github.com/marispinelli3322/tutor-copilot/internal/store"
)

// Analyzer derives reports for one backing store. Each method fetches its own
// variable codes and never depends on another analyzer's output, so callers
// may run them concurrently.
type Analyzer struct {
	store store.Store
}

// New creates an Analyzer backed by the given store.
func New(st store.Store) *Analyzer {
	return &Analyzer{store: st}
}

// ptBR formats numbers the way the takeaway strings present them to tutors.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// sortedSnapshots returns the snapshots ordered by team number. Every
// analyzer iterates teams in this order so ties in later stable sorts resolve
// deterministically.
func sortedSnapshots(snaps map[int]*model.TeamSnapshot) []*model.TeamSnapshot {
	out := make([]*model.TeamSnapshot, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamNumber < out[j].TeamNumber })
	return out
}

// joinNames joins team names with commas for takeaway strings.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	s := names[0]
	for _, n := range names[1:] {
		s += ", " + n
	}
	return s
}
