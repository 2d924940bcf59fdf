package postgres

import (
	"context"
	"portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type blogRepo struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) domain.BlogRepository {
	return &blogRepo{db: db}
}

func (r *blogRepo) Fetch(ctx context.Context) ([]domain.BlogPost, error) {
	query := `SELECT id, title, content, image, created_at FROM blogs ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Image, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (r *blogRepo) GetByID(ctx context.Context, id int64) (*domain.BlogPost, error) {
	query := `SELECT id, title, content, image, created_at FROM blogs WHERE id = $1`

	var post domain.BlogPost
	err := r.db.QueryRow(ctx, query, id).Scan(&post.ID, &post.Title, &post.Content, &post.Image, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	query := `INSERT INTO blogs (title, content, image, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query, post.Title, post.Content, post.Image, post.CreatedAt).Scan(&post.ID)
}

func (r *blogRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	return err
}
