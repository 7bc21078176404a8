package services

import (
	"testing"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewHistoryEntryClampsTimestamp(t *testing.T) {
	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := models.Proposal{History: []models.ProposalHistoryEntry{{ID: "h1", Timestamp: last}}}

	entry := newHistoryEntry(p, "h2", "team-1", *describeStatusChange(models.DraftProposal, models.SentProposal), last.Add(-time.Hour))
	assert.Equal(t, last, entry.Timestamp)
	assert.Equal(t, models.StatusEntry, entry.Type)
	assert.Equal(t, "team-1", entry.AuthorID)

	later := last.Add(time.Minute)
	entry = newHistoryEntry(p, "h3", "team-1", *describeArchive(true), later)
	assert.Equal(t, later, entry.Timestamp)
}

func TestPrependHistory(t *testing.T) {
	p := models.Proposal{History: []models.ProposalHistoryEntry{{ID: "h1"}}}
	prependHistory(&p, models.ProposalHistoryEntry{ID: "h2"})
	prependHistory(&p, models.ProposalHistoryEntry{ID: "h3"})

	ids := make([]string, 0, len(p.History))
	for _, h := range p.History {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []string{"h3", "h2", "h1"}, ids)
}

func TestDescribeDetailsChange(t *testing.T) {
	deadline := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	before := models.Proposal{Title: "A", Description: "B", Deadline: deadline}

	tests := []struct {
		name string
		req  models.ProposalDetailsRequest
		want string
	}{
		{
			name: "nothing changed",
			req:  models.ProposalDetailsRequest{Title: "A", Description: "B", Deadline: deadline},
			want: "Detalles guardados sin cambios",
		},
		{
			name: "same instant in another zone",
			req:  models.ProposalDetailsRequest{Title: "A", Description: "B", Deadline: deadline.In(time.FixedZone("UTC-5", -5*3600))},
			want: "Detalles guardados sin cambios",
		},
		{
			name: "description and deadline",
			req:  models.ProposalDetailsRequest{Title: "A", Description: "C", Deadline: deadline.AddDate(0, 0, 1)},
			want: "Detalles actualizados: descripción, fecha límite",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := describeDetailsChange(before, tt.req)
			assert.Equal(t, models.GeneralEntry, ch.entryType)
			assert.Equal(t, tt.want, ch.description)
		})
	}
}

func TestSameInstant(t *testing.T) {
	a := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("CET", 3600))
	c := a.Add(time.Second)

	assert.True(t, sameInstant(nil, nil))
	assert.True(t, sameInstant(&a, &b))
	assert.False(t, sameInstant(&a, &c))
	assert.False(t, sameInstant(&a, nil))
	assert.False(t, sameInstant(nil, &a))
}

func TestDescribeTaskUpdated(t *testing.T) {
	task := models.Task{Title: "Revisar", Status: models.InProgressTask}
	assert.Equal(t, `Tarea "Revisar" actualizada (estado: En Progreso)`, describeTaskUpdated(task, true).description)
	assert.Equal(t, `Tarea "Revisar" actualizada`, describeTaskUpdated(task, false).description)
}

func TestLockerReleasesKeys(t *testing.T) {
	l := NewLocker()
	unlock := l.LockProposal("p1")
	unlock2 := l.LockProposal("p2")
	unlock()
	unlock2()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}
