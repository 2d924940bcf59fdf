package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/upload"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const maxBlogImageSize = 5 << 20 // 5MB

type BlogHandler struct {
	blogUC domain.BlogUsecase
}

// NewBlogHandler registers the blog routes. writeLimit is applied to the
// mutating routes only.
func NewBlogHandler(group *gin.RouterGroup, writeLimit gin.HandlerFunc, blogUC domain.BlogUsecase) {
	handler := &BlogHandler{
		blogUC: blogUC,
	}

	group.GET("", handler.List)
	group.POST("", writeLimit, handler.Create)
	group.DELETE("/:id", writeLimit, handler.Delete)
}

// List godoc
// @Summary      List Blog Posts
// @Description  All blog posts, newest first.
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   domain.BlogPost
// @Failure      500  {object}  response.ErrorBody
// @Router       /blogs [get]
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.blogUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary      Create Blog Post
// @Description  Create a blog post from a multipart form with an optional image.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  true   "Post title"
// @Param        content  formData  string  true   "Post body"
// @Param        image    formData  file    false  "Cover image (jpg, png, gif, webp)"
// @Success      201      {object}  domain.BlogPost
// @Failure      400      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	input := &domain.CreateBlogInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	name, data, err := readFormImage(c, maxBlogImageSize)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	input.ImageName = name
	input.ImageData = data

	post, err := h.blogUC.Create(c.Request.Context(), input)
	if err != nil {
		writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Delete godoc
// @Summary      Delete Blog Post
// @Description  Remove a blog post and its stored image.
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "Blog post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid blog id"))
		return
	}

	if err := h.blogUC.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.Error(apperror.NotFound("Blog post not found"))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

// readFormImage pulls the optional "image" file out of the multipart form.
// Returns empty name and nil data when no file was uploaded.
func readFormImage(c *gin.Context, maxSize int64) (string, []byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Image is optional; only a present-but-broken part is an error.
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, errors.New("Invalid image upload")
	}

	if fileHeader.Size > maxSize {
		return "", nil, errors.New("Image exceeds the maximum allowed size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, errors.New("Invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return "", nil, errors.New("Invalid image upload")
	}
	if int64(len(data)) > maxSize {
		return "", nil, errors.New("Image exceeds the maximum allowed size")
	}

	return fileHeader.Filename, data, nil
}

// writeCreateError maps usecase failures onto the wire contract.
func writeCreateError(c *gin.Context, err error) {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs.Error(), verrs.Fields)
		return
	}

	if errors.Is(err, upload.ErrInvalidImage) {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	c.Error(err)
}
