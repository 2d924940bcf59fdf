package v1

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const maxProjectImageSize = 10 << 20 // 10MB

type ProjectHandler struct {
	projectUC domain.ProjectUsecase
}

// NewProjectHandler registers the project routes. writeLimit is applied to
// the mutating routes only.
func NewProjectHandler(group *gin.RouterGroup, writeLimit gin.HandlerFunc, projectUC domain.ProjectUsecase) {
	handler := &ProjectHandler{
		projectUC: projectUC,
	}

	group.GET("", handler.List)
	group.POST("", writeLimit, handler.Create)
	group.DELETE("/:id", writeLimit, handler.Delete)
}

// List godoc
// @Summary      List Projects
// @Description  All portfolio projects, newest first.
// @Tags         projects
// @Produce      json
// @Success      200  {array}   domain.Project
// @Failure      500  {object}  response.ErrorBody
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Create godoc
// @Summary      Create Project
// @Description  Create a project entry from a multipart form with an optional screenshot.
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Project title"
// @Param        description  formData  string  false  "Project description"
// @Param        tech_stack   formData  string  false  "Comma-separated technologies"
// @Param        live_url     formData  string  false  "Deployed site URL"
// @Param        repo_url     formData  string  false  "Source repository URL"
// @Param        image        formData  file    false  "Screenshot (jpg, png, gif, webp)"
// @Success      201          {object}  domain.Project
// @Failure      400          {object}  response.ErrorBody
// @Failure      500          {object}  response.ErrorBody
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	input := &domain.CreateProjectInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		TechStack:   c.PostForm("tech_stack"),
		LiveURL:     c.PostForm("live_url"),
		RepoURL:     c.PostForm("repo_url"),
	}

	name, data, err := readFormImage(c, maxProjectImageSize)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	input.ImageName = name
	input.ImageData = data

	project, err := h.projectUC.Create(c.Request.Context(), input)
	if err != nil {
		writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Delete godoc
// @Summary      Delete Project
// @Description  Remove a project and its stored screenshot.
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid project id"))
		return
	}

	if err := h.projectUC.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.Error(apperror.NotFound("Project not found"))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
