package services

import (
	"context"
	"strings"

	"github.com/senyabanana/proposal-service/internal/metrics"
	"github.com/senyabanana/proposal-service/internal/models"
	"github.com/senyabanana/proposal-service/internal/repository"
	"github.com/senyabanana/proposal-service/internal/utils"

	"github.com/google/uuid"
)

type TeamMemberService struct {
	Repo      repository.TeamMemberRepository
	Proposals repository.ProposalRepository
	locks     *Locker
	metrics   *metrics.Metrics
}

// NewTeamMemberService создаёт новый экземпляр TeamMemberService.
func NewTeamMemberService(repo repository.TeamMemberRepository, proposals repository.ProposalRepository, locks *Locker, m *metrics.Metrics) *TeamMemberService {
	return &TeamMemberService{Repo: repo, Proposals: proposals, locks: locks, metrics: m}
}

// ListTeamMembers возвращает всех участников команды.
func (s *TeamMemberService) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.Repo.ListTeamMembers(ctx)
}

// GetTeamMember возвращает участника по id.
func (s *TeamMemberService) GetTeamMember(ctx context.Context, memberId string) (*models.TeamMember, error) {
	return s.Repo.GetTeamMember(ctx, memberId)
}

// CreateTeamMember создает нового участника. Без ролей участник получает TeamMember.
func (s *TeamMemberService) CreateTeamMember(ctx context.Context, req models.TeamMemberRequest) (result *models.TeamMember, err error) {
	defer func() { s.metrics.ObserveOperation("create_member", err) }()

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	member := memberFromRequest(uuid.New().String(), req)
	if err := s.Repo.SaveTeamMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateTeamMember заменяет все поля участника.
func (s *TeamMemberService) UpdateTeamMember(ctx context.Context, memberId string, req models.TeamMemberRequest) (result *models.TeamMember, err error) {
	defer func() { s.metrics.ObserveOperation("update_member", err) }()

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetTeamMember(ctx, memberId); err != nil {
		return nil, err
	}
	member := memberFromRequest(memberId, req)
	if err := s.Repo.SaveTeamMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteTeamMember удаляет участника, если он не лидер и не член команды ни одного предложения.
func (s *TeamMemberService) DeleteTeamMember(ctx context.Context, memberId string) (err error) {
	defer func() { s.metrics.ObserveOperation("delete_member", err) }()

	unlock := s.locks.LockReferences()
	defer unlock()

	if _, err := s.Repo.GetTeamMember(ctx, memberId); err != nil {
		return err
	}
	inUse, err := s.Proposals.MemberInUse(ctx, memberId)
	if err != nil {
		return err
	}
	if inUse {
		return models.Conflict("team member %q is a leader or assigned member of at least one proposal", memberId)
	}
	return s.Repo.DeleteTeamMember(ctx, memberId)
}

// ImportCSV импортирует участников из строк вида name,role,alias,email.
// Строки без имени или роли пропускаются, возвращаются только импортированные участники.
func (s *TeamMemberService) ImportCSV(ctx context.Context, content string) (imported []models.TeamMember, err error) {
	defer func() { s.metrics.ObserveOperation("import_members", err) }()

	imported = []models.TeamMember{}
	for i, line := range strings.Split(content, "\n") {
		fields := strings.Split(line, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		if i == 0 && isHeaderRow(fields) {
			continue
		}

		req := models.TeamMemberRequest{Name: field(fields, 0), Role: field(fields, 1), Alias: field(fields, 2), Email: field(fields, 3)}
		if req.Name == "" || req.Role == "" {
			continue
		}

		member := memberFromRequest(uuid.New().String(), req)
		member.Roles = []models.UserRole{models.TeamMemberRole}
		if err := s.Repo.SaveTeamMember(ctx, member); err != nil {
			return imported, err
		}
		imported = append(imported, member)
	}
	return imported, nil
}

func memberFromRequest(id string, req models.TeamMemberRequest) models.TeamMember {
	return models.TeamMember{
		ID:    id,
		Name:  req.Name,
		Role:  req.Role,
		Alias: req.Alias,
		Email: req.Email,
		Roles: models.NormalizeRoles(req.Roles),
	}
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func isHeaderRow(fields []string) bool {
	name := strings.ToLower(field(fields, 0))
	role := strings.ToLower(field(fields, 1))
	return (name == "name" || name == "nombre") && (role == "role" || role == "rol")
}
