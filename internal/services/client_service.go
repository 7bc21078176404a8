package services

import (
	"context"

	"github.com/senyabanana/proposal-service/internal/metrics"
	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/repository"
	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/google/uuid"
)

type ClientService struct {
	Repo      repository.ClientRepository
	Proposals repository.ProposalRepository
	locks     *Locker
	metrics   *metrics.Metrics
}

// NewClientService создаёт новый экземпляр ClientService.
func NewClientService(repo repository.ClientRepository, proposals repository.ProposalRepository, locks *Locker, m *metrics.Metrics) *ClientService {
	return &ClientService{Repo: repo, Proposals: proposals, locks: locks, metrics: m}
}

// ListClients возвращает всех клиентов.
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.Repo.ListClients(ctx)
}

// GetClient возвращает клиента по id.
func (s *ClientService) GetClient(ctx context.Context, clientId string) (*models.Client, error) {
	return s.Repo.GetClient(ctx, clientId)
}

// CreateClient создает нового клиента.
func (s *ClientService) CreateClient(ctx context.Context, req models.ClientRequest) (result *models.Client, err error) {
	defer func() { s.metrics.ObserveOperation("create_client", err) }()

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	client := models.Client{
		ID:           uuid.New().String(),
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := s.Repo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient заменяет все поля клиента.
func (s *ClientService) UpdateClient(ctx context.Context, clientId string, req models.ClientRequest) (result *models.Client, err error) {
	defer func() { s.metrics.ObserveOperation("update_client", err) }()

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetClient(ctx, clientId); err != nil {
		return nil, err
	}
	client := models.Client{
		ID:           clientId,
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := s.Repo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient удаляет клиента, если на него не ссылается ни одно предложение.
func (s *ClientService) DeleteClient(ctx context.Context, clientId string) (err error) {
	defer func() { s.metrics.ObserveOperation("delete_client", err) }()

	unlock := s.locks.LockReferences()
	defer unlock()

	if _, err := s.Repo.GetClient(ctx, clientId); err != nil {
		return err
	}
	inUse, err := s.Proposals.ClientInUse(ctx, clientId)
	if err != nil {
		return err
	}
	if inUse {
		return models.Conflict("client %q is referenced by at least one proposal", clientId)
	}
	return s.Repo.DeleteClient(ctx, clientId)
}
