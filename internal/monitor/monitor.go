// Package monitor computes the live gate view: which authorized passes
// are ready to exit, currently out, or overdue at a given instant. The
// projection is pure and owns no state; callers re-poll it and feed it
// fresh pass and movement data each time.
package monitor

import (
	"sort"
	"time"

	"campuspass-backend/internal/domain"
)

// LiveEntry is one pass in a live bucket, with movement context.
type LiveEntry struct {
	Pass             domain.GatePass `json:"pass"`
	ExitRecordedOn   *time.Time      `json:"exit_recorded_on,omitempty"`
	OverdueByMinutes int64           `json:"overdue_by_minutes,omitempty"`
}

type Stats struct {
	ReadyCount        int   `json:"ready_count"`
	OutCount          int   `json:"out_count"`
	OverdueCount      int   `json:"overdue_count"`
	MaxOverdueMinutes int64 `json:"max_overdue_minutes"`
}

// LiveView is the three-bucket projection. Buckets are pairwise
// disjoint and deterministically ordered so that two computations over
// the same data produce identical output.
type LiveView struct {
	AsOf    time.Time   `json:"as_of"`
	Ready   []LiveEntry `json:"ready"`
	Out     []LiveEntry `json:"out"`
	Overdue []LiveEntry `json:"overdue"`
	Stats   Stats       `json:"stats"`
}

// Compute classifies each eligible pass against its open exit event.
// openExits maps pass id to the unmatched exit scan, if any; passes
// whose exit has already been matched by an entry must not appear in
// openExits and are classified completed (excluded) by the caller
// simply by not being eligible anymore.
func Compute(passes []domain.GatePass, openExits map[string]domain.MovementEvent, asOf time.Time) *LiveView {
	view := &LiveView{
		AsOf:    asOf,
		Ready:   []LiveEntry{},
		Out:     []LiveEntry{},
		Overdue: []LiveEntry{},
	}

	for _, p := range passes {
		exit, out := openExits[p.ID]
		switch {
		case !out:
			view.Ready = append(view.Ready, LiveEntry{Pass: p})
		case p.ReturnDate == nil || !p.ReturnDate.Before(asOf):
			recorded := exit.RecordedOn
			view.Out = append(view.Out, LiveEntry{Pass: p, ExitRecordedOn: &recorded})
		default:
			recorded := exit.RecordedOn
			minutes := int64(asOf.Sub(*p.ReturnDate) / time.Minute)
			view.Overdue = append(view.Overdue, LiveEntry{
				Pass:             p,
				ExitRecordedOn:   &recorded,
				OverdueByMinutes: minutes,
			})
		}
	}

	sortEntries(view.Ready)
	sortEntries(view.Out)
	sortEntries(view.Overdue)

	view.Stats = Stats{
		ReadyCount:   len(view.Ready),
		OutCount:     len(view.Out),
		OverdueCount: len(view.Overdue),
	}
	for _, e := range view.Overdue {
		if e.OverdueByMinutes > view.Stats.MaxOverdueMinutes {
			view.Stats.MaxOverdueMinutes = e.OverdueByMinutes
		}
	}
	return view
}

func sortEntries(entries []LiveEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Pass, entries[j].Pass
		if !a.CreatedOn.Equal(b.CreatedOn) {
			return a.CreatedOn.Before(b.CreatedOn)
		}
		return a.ID < b.ID
	})
}
