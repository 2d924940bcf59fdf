package domain

import (
	"context"
	"time"
)

// Project represents a portfolio project listing
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TechStack   string    `json:"tech_stack"`
	LiveURL     string    `json:"live_url"`
	RepoURL     string    `json:"repo_url"`
	ImageURL    *string   `json:"image_url"` // public /uploads path, null when no image
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProjectInput carries the multipart form fields of a new project
type CreateProjectInput struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"max=2000"`
	TechStack   string `validate:"max=500"`
	LiveURL     string `validate:"omitempty,http_url"`
	RepoURL     string `validate:"omitempty,http_url"`
	ImageName   string
	ImageData   []byte
}

// ProjectRepository defines persistence for projects
type ProjectRepository interface {
	Fetch(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectUsecase defines the interface for project operations
type ProjectUsecase interface {
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, input *CreateProjectInput) (*Project, error)
	Delete(ctx context.Context, id int64) error
}
