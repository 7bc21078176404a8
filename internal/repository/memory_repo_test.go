package repository

import (
	"context"
	"testing"
	"time"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProposal(id string) models.Proposal {
	return models.Proposal{
		ID:           id,
		Title:        "Site Redesign",
		ClientID:     "client-1",
		LeaderID:     "team-1",
		Deadline:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.DraftProposal,
		CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Documents:    []models.Document{},
		AssignedTeam: []models.AssignedMember{{MemberID: "team-2", AssignedHours: 10}},
		History:      []models.ProposalHistoryEntry{{ID: "h1", AuthorID: "team-1", Type: models.CreationEntry}},
		Comments:     []models.Comment{},
		Tasks:        []models.Task{},
	}
}

func TestMemoryStoreProposals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetProposal(ctx, "p1")
	require.ErrorIs(t, err, models.ErrNotFound)

	p := testProposal("p1")
	require.NoError(t, s.SaveProposal(ctx, p))
	p.AssignedTeam[0].AssignedHours = 99

	got, err := s.GetProposal(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.AssignedTeam[0].AssignedHours)

	got.History[0].Description = "tampered"
	again, err := s.GetProposal(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, again.History[0].Description)

	require.NoError(t, s.SaveProposal(ctx, testProposal("p2")))
	updated := testProposal("p1")
	updated.Title = "Renamed"
	require.NoError(t, s.SaveProposal(ctx, updated))

	all, err := s.ListProposals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "Renamed", all[0].Title)
	assert.Equal(t, "p2", all[1].ID)
}

func TestMemoryStoreReferenceScans(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveProposal(ctx, testProposal("p1")))

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{name: "client referenced", check: func() (bool, error) { return s.ClientInUse(ctx, "client-1") }, want: true},
		{name: "client free", check: func() (bool, error) { return s.ClientInUse(ctx, "client-2") }, want: false},
		{name: "leader", check: func() (bool, error) { return s.MemberInUse(ctx, "team-1") }, want: true},
		{name: "assigned member", check: func() (bool, error) { return s.MemberInUse(ctx, "team-2") }, want: true},
		{name: "unrelated member", check: func() (bool, error) { return s.MemberInUse(ctx, "team-3") }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryStoreClientsAndMembers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SeedDemoData(ctx, s, s))

	clients, err := s.ListClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, DemoClients, clients)

	members, err := s.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	members[0].Roles[0] = models.TeamMemberRole

	ana, err := s.GetTeamMember(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, []models.UserRole{models.AdminRole, models.ProjectManagerRole}, ana.Roles)

	require.NoError(t, s.DeleteClient(ctx, "client-2"))
	assert.ErrorIs(t, s.DeleteClient(ctx, "client-2"), models.ErrNotFound)
	require.NoError(t, s.DeleteTeamMember(ctx, "team-3"))
	assert.ErrorIs(t, s.DeleteTeamMember(ctx, "team-3"), models.ErrNotFound)

	clients, err = s.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}
