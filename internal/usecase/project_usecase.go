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

type projectUsecase struct {
	projectRepo domain.ProjectRepository
	storage     *upload.Storage
	validate    *validator.Validate
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(projectRepo domain.ProjectRepository, storage *upload.Storage, validate *validator.Validate) domain.ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		storage:     storage,
		validate:    validate,
	}
}

func (uc *projectUsecase) List(ctx context.Context) ([]domain.Project, error) {
	return uc.projectRepo.Fetch(ctx)
}

func (uc *projectUsecase) Create(ctx context.Context, input *domain.CreateProjectInput) (*domain.Project, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.TechStack = strings.TrimSpace(input.TechStack)
	input.LiveURL = strings.TrimSpace(input.LiveURL)
	input.RepoURL = strings.TrimSpace(input.RepoURL)

	if verrs := validation.Check(uc.validate, *input); verrs != nil {
		return nil, verrs
	}

	project := &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		TechStack:   input.TechStack,
		LiveURL:     input.LiveURL,
		RepoURL:     input.RepoURL,
		CreatedAt:   time.Now(),
	}

	if len(input.ImageData) > 0 {
		path, err := uc.storage.SaveImage(upload.BucketProjects, input.ImageName, input.ImageData)
		if err != nil {
			return nil, err
		}
		project.ImageURL = &path
	}

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		if project.ImageURL != nil {
			if rmErr := uc.storage.Remove(*project.ImageURL); rmErr != nil {
				logger.Log.Warn("failed to remove orphaned project image", "path", *project.ImageURL, "error", rmErr)
			}
		}
		return nil, err
	}

	return project, nil
}

func (uc *projectUsecase) Delete(ctx context.Context, id int64) error {
	project, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	if project.ImageURL != nil {
		if err := uc.storage.Remove(*project.ImageURL); err != nil {
			logger.Log.Warn("failed to remove project image", "path", *project.ImageURL, "error", err)
		}
	}

	return nil
}
