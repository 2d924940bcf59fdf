package postgres

import (
	"context"
	"portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Fetch(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT id, title, description, tech_stack, live_url, repo_url, image_url, created_at
              FROM projects ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &p.LiveURL, &p.RepoURL, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `SELECT id, title, description, tech_stack, live_url, repo_url, image_url, created_at FROM projects WHERE id = $1`

	var p domain.Project
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &p.LiveURL, &p.RepoURL, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	query := `INSERT INTO projects (title, description, tech_stack, live_url, repo_url, image_url, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRow(ctx, query,
		project.Title, project.Description, project.TechStack, project.LiveURL, project.RepoURL, project.ImageURL, project.CreatedAt,
	).Scan(&project.ID)
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
