package repository

import (
	"context"

	"github.com/senyabanana/proposal-service/internal/models"
)

// ClientRepository - интерфейс для работы с клиентами.
type ClientRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, clientId string) (*models.Client, error)
	SaveClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, clientId string) error
}

// TeamMemberRepository - интерфейс для работы с участниками команды.
type TeamMemberRepository interface {
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	GetTeamMember(ctx context.Context, memberId string) (*models.TeamMember, error)
	SaveTeamMember(ctx context.Context, member models.TeamMember) error
	DeleteTeamMember(ctx context.Context, memberId string) error
}

// ProposalRepository - интерфейс для работы с предложениями.
// Get и List возвращают копии, изменения которых не попадают в хранилище без SaveProposal.
type ProposalRepository interface {
	ListProposals(ctx context.Context) ([]models.Proposal, error)
	GetProposal(ctx context.Context, proposalId string) (*models.Proposal, error)
	SaveProposal(ctx context.Context, proposal models.Proposal) error
	ClientInUse(ctx context.Context, clientId string) (bool, error)
	MemberInUse(ctx context.Context, memberId string) (bool, error)
}
