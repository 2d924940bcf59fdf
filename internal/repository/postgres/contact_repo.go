package postgres

import (
	"context"
	"portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

// Insert writes one independent row. No relation to any other write; callers
// treat failures as log-only.
func (r *contactRepo) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, message, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message, msg.CreatedAt).Scan(&msg.ID)
}
