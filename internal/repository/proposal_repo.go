package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
// Предложение хранится целиком в jsonb, ссылки на клиента и участников вынесены в колонки для проверок.
type PostgresProposalRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProposalRepository создаёт новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db}
}

// ListProposals возвращает список предложений.
func (r *PostgresProposalRepository) ListProposals(ctx context.Context) ([]models.Proposal, error) {
	rows, err := r.DB.Query(ctx, `SELECT data FROM proposal ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var p models.Proposal
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// GetProposal возвращает предложение по id.
func (r *PostgresProposalRepository) GetProposal(ctx context.Context, proposalId string) (*models.Proposal, error) {
	var data []byte
	err := r.DB.QueryRow(ctx, `SELECT data FROM proposal WHERE id = $1`, proposalId).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("proposal", proposalId)
	}
	if err != nil {
		return nil, err
	}

	var p models.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode proposal %s: %w", proposalId, err)
	}
	return &p, nil
}

// SaveProposal создаёт или полностью заменяет предложение.
func (r *PostgresProposalRepository) SaveProposal(ctx context.Context, proposal models.Proposal) error {
	data, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}
	_, err = r.DB.Exec(ctx, `
       INSERT INTO proposal (id, client_id, leader_id, assigned_member_ids, data, created_at)
       VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
       ON CONFLICT (id) DO UPDATE SET
           client_id = EXCLUDED.client_id,
           leader_id = EXCLUDED.leader_id,
           assigned_member_ids = EXCLUDED.assigned_member_ids,
           data = EXCLUDED.data
   `,
		proposal.ID,
		proposal.ClientID,
		proposal.LeaderID,
		pq.Array(proposal.AssignedMemberIDs()),
		data,
		proposal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save proposal: %w", err)
	}
	return nil
}

// ClientInUse проверяет, есть ли предложения с указанным клиентом.
func (r *PostgresProposalRepository) ClientInUse(ctx context.Context, clientId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM proposal WHERE client_id = $1)`
	err := r.DB.QueryRow(ctx, query, clientId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// MemberInUse проверяет, является ли участник лидером или членом команды какого-либо предложения.
func (r *PostgresProposalRepository) MemberInUse(ctx context.Context, memberId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM proposal WHERE leader_id = $1 OR $1 = ANY(assigned_member_ids))`
	err := r.DB.QueryRow(ctx, query, memberId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
