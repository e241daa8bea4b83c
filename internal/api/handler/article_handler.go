package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/api/middleware"
	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for blog articles.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type createArticleRequest struct {
	Title      string `json:"title"       validate:"required"`
	Content    string `json:"content"     validate:"required"`
	AuthorName string `json:"author_name"`
	Date       string `json:"date"`
	ImageURL   string `json:"image_url"   validate:"omitempty,url"`
	Published  bool   `json:"published"`
}

type updateArticleRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	AuthorName *string `json:"author_name"`
	Date       *string `json:"date"`
	ImageURL   *string `json:"image_url"   validate:"omitempty,url"`
	Published  *bool   `json:"published"`
}

// Create handles POST /api/articles. The slug and URL are derived from the
// title server-side.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article details"
// @Success      201   {object}  ports.ArticleView
// @Failure      400   {object}  errorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	authorID, _ := c.Get(middleware.CtxUserID).(string)

	article, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   authorID,
		AuthorName: req.AuthorName,
		Date:       req.Date,
		ImageURL:   req.ImageURL,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

// List handles GET /api/articles, newest first.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  ports.ArticleView
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.List(c.Request().Context(), ports.ArticleQuery{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNilArticles(articles))
}

// ListPublic handles GET /api/public-articles: published articles only.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  ports.ArticleView
// @Router       /api/public-articles [get]
func (h *ArticleHandler) ListPublic(c echo.Context) error {
	articles, err := h.service.List(c.Request().Context(), ports.ArticleQuery{PublishedOnly: true})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNilArticles(articles))
}

// Get handles GET /api/articles/:id.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  ports.ArticleView
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// GetPublic handles GET /api/public-articles/:slug. Unpublished articles are
// invisible here, indistinguishable from missing ones.
//
// @Summary      Get a published article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200   {object}  ports.ArticleView
// @Failure      404   {object}  errorResponse
// @Router       /api/public-articles/{slug} [get]
func (h *ArticleHandler) GetPublic(c echo.Context) error {
	article, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	if !article.Published {
		return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrArticleNotFound.Error()})
	}
	return c.JSON(http.StatusOK, article)
}

// Update handles PATCH /api/articles/:id with an allow-listed patch.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to update"
// @Success      200   {object}  ports.ArticleView
// @Failure      404   {object}  errorResponse
// @Router       /api/articles/{id} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	article, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ArticlePatch{
		Title:      req.Title,
		Content:    req.Content,
		AuthorName: req.AuthorName,
		Date:       req.Date,
		ImageURL:   req.ImageURL,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func emptyIfNilArticles(articles []ports.ArticleView) []ports.ArticleView {
	if articles == nil {
		return []ports.ArticleView{}
	}
	return articles
}
