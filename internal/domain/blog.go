package domain

import (
	"context"
	"time"
)

// BlogPost represents a published blog entry
type BlogPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"` // public /uploads path, null when no image
	CreatedAt time.Time `json:"created_at"`
}

// CreateBlogInput carries the multipart form fields of a new post
type CreateBlogInput struct {
	Title     string `validate:"required,max=100"`
	Content   string `validate:"required,min=10"`
	ImageName string // original filename, empty when no image uploaded
	ImageData []byte
}

// BlogRepository defines persistence for blog posts
type BlogRepository interface {
	Fetch(ctx context.Context) ([]BlogPost, error)
	GetByID(ctx context.Context, id int64) (*BlogPost, error)
	Create(ctx context.Context, post *BlogPost) error
	Delete(ctx context.Context, id int64) error
}

// BlogUsecase defines the interface for blog operations
type BlogUsecase interface {
	List(ctx context.Context) ([]BlogPost, error)
	Create(ctx context.Context, input *CreateBlogInput) (*BlogPost, error)
	Delete(ctx context.Context, id int64) error
}
