package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/proposal-service/internal/metrics"
	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/repository"
	"github.com/senyabanana/proposal-service/internal/storage"
	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/google/uuid"
)

// errNoop сообщает mutate, что изменение не требуется и сохранять нечего.
var errNoop = errors.New("no-op")

// ProposalService - единственная точка изменения предложений.
type ProposalService struct {
	Repo    repository.ProposalRepository
	Clients repository.ClientRepository
	Members repository.TeamMemberRepository

	locks   *Locker
	blobs   storage.BlobStore
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// ProposalOption настраивает ProposalService.
type ProposalOption func(*ProposalService)

// WithBlobStore выносит содержимое версий документов во внешнее хранилище.
func WithBlobStore(blobs storage.BlobStore) ProposalOption {
	return func(s *ProposalService) { s.blobs = blobs }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) ProposalOption {
	return func(s *ProposalService) { s.now = now }
}

// WithMetrics включает счётчики операций.
func WithMetrics(m *metrics.Metrics) ProposalOption {
	return func(s *ProposalService) { s.metrics = m }
}

// NewProposalService создаёт новый экземпляр ProposalService.
func NewProposalService(
	repo repository.ProposalRepository,
	clients repository.ClientRepository,
	members repository.TeamMemberRepository,
	locks *Locker,
	opts ...ProposalOption,
) *ProposalService {
	s := &ProposalService{
		Repo:    repo,
		Clients: clients,
		Members: members,
		locks:   locks,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProposals возвращает все предложения.
func (s *ProposalService) ListProposals(ctx context.Context) ([]models.Proposal, error) {
	return s.Repo.ListProposals(ctx)
}

// GetProposal возвращает предложение по id.
func (s *ProposalService) GetProposal(ctx context.Context, proposalId string) (*models.Proposal, error) {
	if proposalId == "" {
		return nil, models.InvalidInput("missing required parameter: proposalId")
	}
	return s.Repo.GetProposal(ctx, proposalId)
}

// mutate загружает предложение, применяет apply к копии, пишет историю и сохраняет.
// При ошибке apply хранилище не меняется. Начатое сохранение не прерывается отменой контекста.
func (s *ProposalService) mutate(
	ctx context.Context,
	operation, proposalId, authorId string,
	apply func(p *models.Proposal) (*historyChange, error),
) (result *models.Proposal, err error) {
	defer func() { s.metrics.ObserveOperation(operation, err) }()

	if proposalId == "" {
		return nil, models.InvalidInput("missing required parameter: proposalId")
	}
	if authorId == "" {
		return nil, models.InvalidInput("missing required parameter: authorId")
	}

	unlock := s.locks.LockProposal(proposalId)
	defer unlock()

	proposal, err := s.Repo.GetProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}

	ch, err := apply(proposal)
	if errors.Is(err, errNoop) {
		return proposal, nil
	}
	if err != nil {
		return nil, err
	}

	if ch != nil {
		prependHistory(proposal, newHistoryEntry(*proposal, s.newID(), authorId, *ch, s.now()))
	}
	if err := s.Repo.SaveProposal(context.WithoutCancel(ctx), *proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal %s: %w", proposalId, err)
	}
	return proposal, nil
}

// CreateProposal создает новое предложение в статусе Borrador.
func (s *ProposalService) CreateProposal(ctx context.Context, req models.ProposalRequest, authorId string) (result *models.Proposal, err error) {
	defer func() { s.metrics.ObserveOperation("create_proposal", err) }()

	if authorId == "" {
		return nil, models.InvalidInput("missing required parameter: authorId")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateAlertDate(req.AlertDate, req.Deadline); err != nil {
		return nil, err
	}

	id := s.newID()
	unlock := s.locks.LockProposal(id)
	defer unlock()

	if _, err := s.Clients.GetClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if req.LeaderID != "" {
		if _, err := s.Members.GetTeamMember(ctx, req.LeaderID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	proposal := models.Proposal{
		ID:           id,
		Title:        req.Title,
		ClientID:     req.ClientID,
		LeaderID:     req.LeaderID,
		Description:  req.Description,
		Deadline:     req.Deadline,
		AlertDate:    req.AlertDate,
		Status:       models.DraftProposal,
		IsArchived:   false,
		CreatedAt:    now,
		Documents:    []models.Document{},
		AssignedTeam: []models.AssignedMember{},
		History:      []models.ProposalHistoryEntry{},
		Comments:     []models.Comment{},
		Tasks:        []models.Task{},
	}
	prependHistory(&proposal, newHistoryEntry(proposal, s.newID(), authorId, *describeCreation(req.Title), now))

	if err := s.Repo.SaveProposal(context.WithoutCancel(ctx), proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}
	return &proposal, nil
}

// UpdateProposalDetails меняет название, описание и даты предложения.
func (s *ProposalService) UpdateProposalDetails(ctx context.Context, proposalId string, req models.ProposalDetailsRequest, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "update_details", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if err := utils.ValidateStruct(req); err != nil {
			return nil, err
		}
		if err := validateAlertDate(req.AlertDate, req.Deadline); err != nil {
			return nil, err
		}

		ch := describeDetailsChange(*p, req)
		p.Title = req.Title
		p.Description = req.Description
		p.Deadline = req.Deadline
		p.AlertDate = req.AlertDate
		return ch, nil
	})
}

// UpdateProposalStatus меняет статус предложения. Допустим переход из любого статуса в любой.
func (s *ProposalService) UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "update_status", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if !status.IsValid() {
			return nil, models.InvalidInput("invalid proposal status: %s", status)
		}
		ch := describeStatusChange(p.Status, status)
		p.Status = status
		return ch, nil
	})
}

// ToggleArchiveProposal архивирует или разархивирует предложение.
// При разархивировании статус всегда возвращается в Borrador.
func (s *ProposalService) ToggleArchiveProposal(ctx context.Context, proposalId, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "toggle_archive", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		p.IsArchived = !p.IsArchived
		if !p.IsArchived {
			p.Status = models.DraftProposal
		}
		return describeArchive(p.IsArchived), nil
	})
}

// UpdateProposalLeader назначает лидера предложения.
func (s *ProposalService) UpdateProposalLeader(ctx context.Context, proposalId, leaderId, authorId string) (*models.Proposal, error) {
	return s.mutate(ctx, "update_leader", proposalId, authorId, func(p *models.Proposal) (*historyChange, error) {
		if leaderId == "" {
			return nil, models.InvalidInput("missing required parameter: leaderId")
		}
		leader, err := s.Members.GetTeamMember(ctx, leaderId)
		if err != nil {
			return nil, err
		}

		var previous *models.TeamMember
		if p.LeaderID != "" {
			previous, err = s.Members.GetTeamMember(ctx, p.LeaderID)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
		}

		p.LeaderID = leader.ID
		return describeLeaderChange(previous, *leader), nil
	})
}

func validateAlertDate(alertDate *time.Time, deadline time.Time) error {
	if alertDate != nil && !alertDate.Before(deadline) {
		return models.InvalidInput("alertDate must be before deadline")
	}
	return nil
}
