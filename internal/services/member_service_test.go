package services_test

import (
	"context"
	"testing"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteClientGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createProposal(t)

	err := f.clients.DeleteClient(ctx, "client-1")
	require.ErrorIs(t, err, models.ErrConflict)
	_, err = f.store.GetClient(ctx, "client-1")
	require.NoError(t, err)

	require.NoError(t, f.clients.DeleteClient(ctx, "client-2"))
	_, err = f.store.GetClient(ctx, "client-2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, f.clients.DeleteClient(ctx, "client-2"), models.ErrNotFound)
}

func TestClientCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.clients.CreateClient(ctx, models.ClientRequest{CompanyName: "Acme", ContactName: "Eva", ContactEmail: "eva@acme.test"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, err := f.clients.UpdateClient(ctx, created.ID, models.ClientRequest{CompanyName: "Acme SL", ContactName: "Eva"})
	require.NoError(t, err)
	assert.Equal(t, "Acme SL", updated.CompanyName)
	assert.Empty(t, updated.ContactEmail)

	got, err := f.clients.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = f.clients.CreateClient(ctx, models.ClientRequest{CompanyName: "Acme", ContactName: "Eva", ContactEmail: "not-an-email"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = f.clients.UpdateClient(ctx, "client-404", models.ClientRequest{CompanyName: "X", ContactName: "Y"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := f.clients.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteTeamMemberGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProposal(t)

	_, err := f.proposals.UpdateProposalLeader(ctx, p.ID, "team-1", author)
	require.NoError(t, err)
	_, err = f.proposals.AssignTeamMember(ctx, p.ID, "team-2", 10, author)
	require.NoError(t, err)

	assert.ErrorIs(t, f.members.DeleteTeamMember(ctx, "team-1"), models.ErrConflict)
	assert.ErrorIs(t, f.members.DeleteTeamMember(ctx, "team-2"), models.ErrConflict)
	assert.ErrorIs(t, f.members.DeleteTeamMember(ctx, "team-404"), models.ErrNotFound)

	_, err = f.proposals.UnassignTeamMember(ctx, p.ID, "team-2", author)
	require.NoError(t, err)
	require.NoError(t, f.members.DeleteTeamMember(ctx, "team-2"))
	require.NoError(t, f.members.DeleteTeamMember(ctx, "team-3"))

	members, err := f.members.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "team-1", members[0].ID)
}

func TestTeamMemberRolesAreNormalized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.members.CreateTeamMember(ctx, models.TeamMemberRequest{Name: "Luis", Role: "QA"})
	require.NoError(t, err)
	assert.Equal(t, []models.UserRole{models.TeamMemberRole}, member.Roles)

	member, err = f.members.UpdateTeamMember(ctx, member.ID, models.TeamMemberRequest{
		Name: "Luis", Role: "QA Lead",
		Roles: []models.UserRole{models.ProjectManagerRole, models.ProjectManagerRole, models.AdminRole},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.UserRole{models.ProjectManagerRole, models.AdminRole}, member.Roles)

	_, err = f.members.CreateTeamMember(ctx, models.TeamMemberRequest{Name: "Luis", Role: "QA", Roles: []models.UserRole{"Owner"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestImportCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	content := "nombre,rol,alias,email\n" +
		" Pedro Sánchez , Analista , pedro , pedro@example.com\n" +
		"\n" +
		"Sin Rol,,alias\n" +
		",Diseñador\n" +
		"Lucía Martín,Consultora\r\n"

	imported, err := f.members.ImportCSV(ctx, content)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	assert.Equal(t, "Pedro Sánchez", imported[0].Name)
	assert.Equal(t, "Analista", imported[0].Role)
	assert.Equal(t, "pedro", imported[0].Alias)
	assert.Equal(t, "pedro@example.com", imported[0].Email)
	assert.Equal(t, []models.UserRole{models.TeamMemberRole}, imported[0].Roles)

	assert.Equal(t, "Lucía Martín", imported[1].Name)
	assert.Equal(t, "Consultora", imported[1].Role)
	assert.Empty(t, imported[1].Email)

	members, err := f.members.ListTeamMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 5)
}

func TestImportCSVWithoutValidRows(t *testing.T) {
	f := newFixture(t)

	imported, err := f.members.ImportCSV(context.Background(), "name,role\n,\n")
	require.NoError(t, err)
	assert.Empty(t, imported)
}
