package monitor

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campuspass-backend/internal/domain"
)

func approvedPass(id string, createdOn time.Time, returnDate *time.Time) domain.GatePass {
	return domain.GatePass{
		ID:            id,
		StudentID:     "student-" + id,
		Type:          domain.PassTypeRegular,
		Status:        domain.PassStatusApprovedWarden,
		DepartureDate: createdOn,
		ReturnDate:    returnDate,
		CreatedOn:     createdOn,
	}
}

func exitEvent(passID string, at time.Time) domain.MovementEvent {
	return domain.MovementEvent{
		ID:         "ev-" + passID,
		PassID:     passID,
		Action:     domain.MovementExit,
		RecordedOn: at,
	}
}

func TestCompute_Buckets(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := asOf.Add(-6 * time.Hour)

	futureReturn := asOf.Add(2 * time.Hour)
	pastReturn := asOf.Add(-90 * time.Minute)

	passes := []domain.GatePass{
		approvedPass("ready", base, &futureReturn),
		approvedPass("out", base, &futureReturn),
		approvedPass("late", base, &pastReturn),
	}
	openExits := map[string]domain.MovementEvent{
		"out":  exitEvent("out", base.Add(time.Hour)),
		"late": exitEvent("late", base.Add(time.Hour)),
	}

	view := Compute(passes, openExits, asOf)

	assert.Len(t, view.Ready, 1)
	assert.Equal(t, "ready", view.Ready[0].Pass.ID)
	assert.Len(t, view.Out, 1)
	assert.Equal(t, "out", view.Out[0].Pass.ID)
	assert.Len(t, view.Overdue, 1)
	assert.Equal(t, "late", view.Overdue[0].Pass.ID)
	assert.Equal(t, int64(90), view.Overdue[0].OverdueByMinutes)

	assert.Equal(t, 1, view.Stats.ReadyCount)
	assert.Equal(t, 1, view.Stats.OutCount)
	assert.Equal(t, 1, view.Stats.OverdueCount)
	assert.Equal(t, int64(90), view.Stats.MaxOverdueMinutes)
}

func TestCompute_BucketsDisjoint(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := asOf.Add(-24 * time.Hour)

	var passes []domain.GatePass
	openExits := map[string]domain.MovementEvent{}
	for i, cfg := range []struct {
		id      string
		out     bool
		ret     time.Duration // relative to asOf; 0 means nil return date
	}{
		{"a", false, time.Hour},
		{"b", true, time.Hour},
		{"c", true, -time.Hour},
		{"d", true, 0},
		{"e", false, 0},
	} {
		var ret *time.Time
		if cfg.ret != 0 {
			r := asOf.Add(cfg.ret)
			ret = &r
		}
		p := approvedPass(cfg.id, base.Add(time.Duration(i)*time.Minute), ret)
		passes = append(passes, p)
		if cfg.out {
			openExits[p.ID] = exitEvent(p.ID, base.Add(2*time.Hour))
		}
	}

	view := Compute(passes, openExits, asOf)

	seen := map[string]int{}
	for _, e := range view.Ready {
		seen[e.Pass.ID]++
	}
	for _, e := range view.Out {
		seen[e.Pass.ID]++
	}
	for _, e := range view.Overdue {
		seen[e.Pass.ID]++
	}
	assert.Len(t, seen, len(passes))
	for id, count := range seen {
		assert.Equal(t, 1, count, "pass %s appears in more than one bucket", id)
	}
}

func TestCompute_NilReturnDateNeverOverdue(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := approvedPass("day", asOf.Add(-48*time.Hour), nil)
	openExits := map[string]domain.MovementEvent{
		"day": exitEvent("day", asOf.Add(-47*time.Hour)),
	}

	view := Compute([]domain.GatePass{p}, openExits, asOf)

	assert.Empty(t, view.Overdue)
	assert.Len(t, view.Out, 1)
}

func TestCompute_ReturnDateEqualAsOfIsOut(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ret := asOf
	p := approvedPass("edge", asOf.Add(-time.Hour), &ret)
	openExits := map[string]domain.MovementEvent{
		"edge": exitEvent("edge", asOf.Add(-30*time.Minute)),
	}

	view := Compute([]domain.GatePass{p}, openExits, asOf)

	assert.Len(t, view.Out, 1)
	assert.Empty(t, view.Overdue)
}

func TestCompute_Idempotent(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := asOf.Add(-3 * time.Hour)

	past := asOf.Add(-10 * time.Minute)
	future := asOf.Add(10 * time.Minute)
	passes := []domain.GatePass{
		approvedPass("b", base.Add(time.Minute), &future),
		approvedPass("a", base, &past),
		approvedPass("c", base.Add(2*time.Minute), nil),
	}
	openExits := map[string]domain.MovementEvent{
		"a": exitEvent("a", base.Add(time.Hour)),
		"b": exitEvent("b", base.Add(time.Hour)),
	}

	first := Compute(passes, openExits, asOf)
	second := Compute(passes, openExits, asOf)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestCompute_EmptyInput(t *testing.T) {
	view := Compute(nil, nil, time.Now().UTC())
	assert.NotNil(t, view.Ready)
	assert.NotNil(t, view.Out)
	assert.NotNil(t, view.Overdue)
	assert.Equal(t, Stats{}, view.Stats)
}

func TestCompute_DeterministicOrdering(t *testing.T) {
	asOf := time.Now().UTC()
	base := asOf.Add(-time.Hour)

	// Same creation time; ties break on id.
	passes := []domain.GatePass{
		approvedPass("z", base, nil),
		approvedPass("a", base, nil),
		approvedPass("m", base, nil),
	}

	view := Compute(passes, nil, asOf)
	assert.Equal(t, "a", view.Ready[0].Pass.ID)
	assert.Equal(t, "m", view.Ready[1].Pass.ID)
	assert.Equal(t, "z", view.Ready[2].Pass.ID)
}
