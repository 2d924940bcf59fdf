package usecase

import (
	"context"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/upload"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type blogUsecase struct {
	blogRepo domain.BlogRepository
	storage  *upload.Storage
	validate *validator.Validate
}

// NewBlogUsecase creates a new blog usecase
func NewBlogUsecase(blogRepo domain.BlogRepository, storage *upload.Storage, validate *validator.Validate) domain.BlogUsecase {
	return &blogUsecase{
		blogRepo: blogRepo,
		storage:  storage,
		validate: validate,
	}
}

func (uc *blogUsecase) List(ctx context.Context) ([]domain.BlogPost, error) {
	return uc.blogRepo.Fetch(ctx)
}

func (uc *blogUsecase) Create(ctx context.Context, input *domain.CreateBlogInput) (*domain.BlogPost, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	if verrs := validation.Check(uc.validate, *input); verrs != nil {
		return nil, verrs
	}

	post := &domain.BlogPost{
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if len(input.ImageData) > 0 {
		path, err := uc.storage.SaveImage(upload.BucketBlog, input.ImageName, input.ImageData)
		if err != nil {
			return nil, err
		}
		post.Image = &path
	}

	if err := uc.blogRepo.Create(ctx, post); err != nil {
		// Orphaned file cleanup; the row is the source of truth.
		if post.Image != nil {
			if rmErr := uc.storage.Remove(*post.Image); rmErr != nil {
				logger.Log.Warn("failed to remove orphaned blog image", "path", *post.Image, "error", rmErr)
			}
		}
		return nil, err
	}

	return post, nil
}

func (uc *blogUsecase) Delete(ctx context.Context, id int64) error {
	post, err := uc.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.blogRepo.Delete(ctx, id); err != nil {
		return err
	}

	if post.Image != nil {
		if err := uc.storage.Remove(*post.Image); err != nil {
			logger.Log.Warn("failed to remove blog image", "path", *post.Image, "error", err)
		}
	}

	return nil
}
