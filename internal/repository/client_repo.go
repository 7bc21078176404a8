package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClientRepository - реализация ClientRepository для базы данных.
type PostgresClientRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresClientRepository создаёт новый экземпляр PostgresClientRepository.
func NewPostgresClientRepository(db *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{DB: db}
}

// ListClients возвращает список клиентов.
func (r *PostgresClientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	query := `SELECT id, company_name, contact_name, contact_email, contact_phone FROM client ORDER BY created_at, id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(
			&c.ID,
			&c.CompanyName,
			&c.ContactName,
			&c.ContactEmail,
			&c.ContactPhone); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetClient возвращает клиента по id.
func (r *PostgresClientRepository) GetClient(ctx context.Context, clientId string) (*models.Client, error) {
	var c models.Client
	query := `SELECT id, company_name, contact_name, contact_email, contact_phone FROM client WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, clientId).Scan(
		&c.ID,
		&c.CompanyName,
		&c.ContactName,
		&c.ContactEmail,
		&c.ContactPhone,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFound("client", clientId)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveClient создаёт клиента или заменяет все его поля.
func (r *PostgresClientRepository) SaveClient(ctx context.Context, client models.Client) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO client (id, company_name, contact_name, contact_email, contact_phone)
       VALUES ($1, $2, $3, $4, $5)
       ON CONFLICT (id) DO UPDATE SET
           company_name = EXCLUDED.company_name,
           contact_name = EXCLUDED.contact_name,
           contact_email = EXCLUDED.contact_email,
           contact_phone = EXCLUDED.contact_phone
   `,
		client.ID,
		client.CompanyName,
		client.ContactName,
		client.ContactEmail,
		client.ContactPhone)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// DeleteClient удаляет клиента.
func (r *PostgresClientRepository) DeleteClient(ctx context.Context, clientId string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM client WHERE id = $1`, clientId)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("client", clientId)
	}
	return nil
}
