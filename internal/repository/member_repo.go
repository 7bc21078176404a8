package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresTeamMemberRepository - реализация TeamMemberRepository для базы данных.
type PostgresTeamMemberRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTeamMemberRepository создаёт новый экземпляр PostgresTeamMemberRepository.
func NewPostgresTeamMemberRepository(db *pgxpool.Pool) *PostgresTeamMemberRepository {
	return &PostgresTeamMemberRepository{DB: db}
}

// ListTeamMembers возвращает список участников команды.
func (r *PostgresTeamMemberRepository) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	query := `SELECT id, name, role, alias, email, roles FROM team_member ORDER BY created_at, id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// GetTeamMember возвращает участника по id.
func (r *PostgresTeamMemberRepository) GetTeamMember(ctx context.Context, memberId string) (*models.TeamMember, error) {
	query := `SELECT id, name, role, alias, email, roles FROM team_member WHERE id = $1`
	m, err := scanTeamMember(r.DB.QueryRow(ctx, query, memberId))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("team member", memberId)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SaveTeamMember создаёт участника или заменяет все его поля.
func (r *PostgresTeamMemberRepository) SaveTeamMember(ctx context.Context, member models.TeamMember) error {
	roles := make([]string, 0, len(member.Roles))
	for _, role := range member.Roles {
		roles = append(roles, string(role))
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO team_member (id, name, role, alias, email, roles)
       VALUES ($1, $2, $3, $4, $5, $6)
       ON CONFLICT (id) DO UPDATE SET
           name = EXCLUDED.name,
           role = EXCLUDED.role,
           alias = EXCLUDED.alias,
           email = EXCLUDED.email,
           roles = EXCLUDED.roles
   `,
		member.ID,
		member.Name,
		member.Role,
		member.Alias,
		member.Email,
		pq.Array(roles))
	if err != nil {
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}

// DeleteTeamMember удаляет участника.
func (r *PostgresTeamMemberRepository) DeleteTeamMember(ctx context.Context, memberId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM team_member WHERE id = $1`, memberId)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("team member", memberId)
	}
	return nil
}

func scanTeamMember(row pgx.Row) (*models.TeamMember, error) {
	var m models.TeamMember
	var roles []string
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Alias, &m.Email, &roles); err != nil {
		return nil, err
	}
	for _, role := range roles {
		m.Roles = append(m.Roles, models.UserRole(role))
	}
	return &m, nil
}
