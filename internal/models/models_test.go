package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProposal() Proposal {
	alert := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC)
	return Proposal{
		ID:           "p1",
		AlertDate:    &alert,
		Documents:    []Document{{ID: "d1", Versions: []DocumentVersion{{VersionNumber: 1, FileContent: []byte("v1")}}}},
		AssignedTeam: []AssignedMember{{MemberID: "team-2", AssignedHours: 10}},
		History:      []ProposalHistoryEntry{{ID: "h1"}},
		Comments:     []Comment{{ID: "c1"}},
		Tasks:        []Task{{ID: "t1", DueDate: &due, Comments: []Comment{{ID: "tc1"}}}},
	}
}

func TestProposalCloneIsDeep(t *testing.T) {
	original := sampleProposal()
	cp := original.Clone()
	require.Equal(t, original, cp)

	*cp.AlertDate = cp.AlertDate.Add(time.Hour)
	cp.Documents[0].Versions[0].FileContent[0] = 'X'
	cp.AssignedTeam[0].AssignedHours = 99
	cp.History[0].ID = "changed"
	cp.Comments[0].ID = "changed"
	*cp.Tasks[0].DueDate = cp.Tasks[0].DueDate.Add(time.Hour)
	cp.Tasks[0].Comments[0].ID = "changed"

	assert.Equal(t, sampleProposal(), original)
}

func TestProposalHelpers(t *testing.T) {
	p := Proposal{Status: AcceptedProposal, LeaderID: "team-1", AssignedTeam: []AssignedMember{{MemberID: "team-2", AssignedHours: 5}}}
	assert.Equal(t, AcceptedProposal, p.DisplayStatus())
	p.IsArchived = true
	assert.Equal(t, ArchivedProposal, p.DisplayStatus())

	assert.True(t, p.References("team-1"))
	assert.True(t, p.References("team-2"))
	assert.False(t, p.References("team-3"))
	assert.Equal(t, []string{"team-2"}, p.AssignedMemberIDs())

	a, ok := p.AssignedMember("team-2")
	require.True(t, ok)
	assert.Equal(t, 5, a.AssignedHours)
}

func TestLatestVersionNumber(t *testing.T) {
	assert.Equal(t, 0, Document{}.LatestVersionNumber())
	d := Document{Versions: []DocumentVersion{{VersionNumber: 3}, {VersionNumber: 2}, {VersionNumber: 1}}}
	assert.Equal(t, 3, d.LatestVersionNumber())
}

func TestStatusValidity(t *testing.T) {
	for _, s := range []ProposalStatus{DraftProposal, SentProposal, AcceptedProposal, RejectedProposal} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ArchivedProposal.IsValid())
	assert.False(t, ProposalStatus("").IsValid())

	assert.True(t, InProgressTask.IsValid())
	assert.False(t, TaskStatus("Hecha").IsValid())
	assert.True(t, LowPriority.IsValid())
	assert.False(t, TaskPriority("Urgente").IsValid())
}

func TestNormalizeRoles(t *testing.T) {
	assert.Equal(t, []UserRole{TeamMemberRole}, NormalizeRoles(nil))
	assert.Equal(t, []UserRole{AdminRole, TeamMemberRole}, NormalizeRoles([]UserRole{AdminRole, TeamMemberRole, AdminRole}))

	m := TeamMember{Roles: []UserRole{AdminRole}}
	assert.True(t, m.HasRole(AdminRole))
	assert.False(t, m.HasRole(ProjectManagerRole))

	cp := m.Clone()
	cp.Roles[0] = TeamMemberRole
	assert.Equal(t, AdminRole, m.Roles[0])
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err    error
		target error
		status int
	}{
		{err: NotFound("proposal", "p1"), target: ErrNotFound, status: http.StatusNotFound},
		{err: Conflict("client %q in use", "c1"), target: ErrConflict, status: http.StatusConflict},
		{err: NotAssigned("team-3", "p1"), target: ErrNotAssigned, status: http.StatusUnprocessableEntity},
		{err: InvalidInput("bad hours"), target: ErrInvalidInput, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("operation failed: %w", tt.err)
		assert.ErrorIs(t, wrapped, tt.target)

		var errorResponse *ErrorResponse
		require.True(t, errors.As(wrapped, &errorResponse))
		assert.Equal(t, tt.status, errorResponse.StatusCode)
	}

	assert.NotErrorIs(t, NotFound("proposal", "p1"), ErrConflict)
	assert.Equal(t, `proposal "p1" not found`, NotFound("proposal", "p1").Error())
	assert.Equal(t, "Conflict", ErrConflict.Error())
}
