package repository

import (
	"context"
	"sync"

	"github.com/senyabanana/proposal-service/internal/models"
)

// Compile-time проверки соответствия интерфейсам.
var (
	_ ClientRepository     = (*MemoryStore)(nil)
	_ TeamMemberRepository = (*MemoryStore)(nil)
	_ ProposalRepository   = (*MemoryStore)(nil)
)

// table хранит записи в порядке добавления и отдаёт наружу только копии.
type table[T any] struct {
	items map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{items: make(map[string]T), clone: clone}
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.items[id]))
	}
	return out
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.items[id]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.items[id]; !ok {
		t.order = append(t.order, id)
	}
	t.items[id] = t.clone(v)
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// MemoryStore - реализация всех репозиториев в памяти процесса.
// Данные теряются при перезапуске.
type MemoryStore struct {
	mu        sync.RWMutex
	clients   *table[models.Client]
	members   *table[models.TeamMember]
	proposals *table[models.Proposal]
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:   newTable(func(c models.Client) models.Client { return c }),
		members:   newTable(models.TeamMember.Clone),
		proposals: newTable(models.Proposal.Clone),
	}
}

// ListClients возвращает всех клиентов.
func (s *MemoryStore) ListClients(_ context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.list(), nil
}

// GetClient возвращает клиента по id.
func (s *MemoryStore) GetClient(_ context.Context, clientId string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients.get(clientId)
	if !ok {
		return nil, models.NotFound("client", clientId)
	}
	return &c, nil
}

// SaveClient создаёт или заменяет клиента.
func (s *MemoryStore) SaveClient(_ context.Context, client models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.put(client.ID, client)
	return nil
}

// DeleteClient удаляет клиента без проверки ссылок.
func (s *MemoryStore) DeleteClient(_ context.Context, clientId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clients.remove(clientId) {
		return models.NotFound("client", clientId)
	}
	return nil
}

// ListTeamMembers возвращает всех участников команды.
func (s *MemoryStore) ListTeamMembers(_ context.Context) ([]models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.list(), nil
}

// GetTeamMember возвращает участника по id.
func (s *MemoryStore) GetTeamMember(_ context.Context, memberId string) (*models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members.get(memberId)
	if !ok {
		return nil, models.NotFound("team member", memberId)
	}
	return &m, nil
}

// SaveTeamMember создаёт или заменяет участника.
func (s *MemoryStore) SaveTeamMember(_ context.Context, member models.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members.put(member.ID, member)
	return nil
}

// DeleteTeamMember удаляет участника без проверки ссылок.
func (s *MemoryStore) DeleteTeamMember(_ context.Context, memberId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.members.remove(memberId) {
		return models.NotFound("team member", memberId)
	}
	return nil
}

// ListProposals возвращает все предложения.
func (s *MemoryStore) ListProposals(_ context.Context) ([]models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposals.list(), nil
}

// GetProposal возвращает копию предложения по id.
func (s *MemoryStore) GetProposal(_ context.Context, proposalId string) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals.get(proposalId)
	if !ok {
		return nil, models.NotFound("proposal", proposalId)
	}
	return &p, nil
}

// SaveProposal сохраняет копию предложения.
func (s *MemoryStore) SaveProposal(_ context.Context, proposal models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals.put(proposal.ID, proposal)
	return nil
}

// ClientInUse проверяет, есть ли предложения с указанным клиентом.
func (s *MemoryStore) ClientInUse(_ context.Context, clientId string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.proposals.items {
		if p.ClientID == clientId {
			return true, nil
		}
	}
	return false, nil
}

// MemberInUse проверяет, является ли участник лидером или членом команды какого-либо предложения.
func (s *MemoryStore) MemberInUse(_ context.Context, memberId string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.proposals.items {
		if p.References(memberId) {
			return true, nil
		}
	}
	return false, nil
}
