package handler

import (
	"log/slog"
	"net/http"

	"github.com/avelichko/reviewhub/internal/usecase"
	"github.com/gin-gonic/gin"
)

type slugItem struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type slugItemRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type CategoryHandler struct {
	taxonomy *usecase.TaxonomyUsecase
	logger   *slog.Logger
}

func NewCategoryHandler(taxonomy *usecase.TaxonomyUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{taxonomy: taxonomy, logger: logger.With("component", "category_handler")}
}

func (h *CategoryHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	categories, err := h.taxonomy.ListCategories(c.Request.Context(), usecase.ListInput{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, h.logger, "list categories", err)
		return
	}

	out := make([]slugItem, len(categories))
	for i, cat := range categories {
		out[i] = slugItem{Name: cat.Name, Slug: cat.Slug}
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req slugItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.taxonomy.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondError(c, h.logger, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, slugItem{Name: created.Name, Slug: created.Slug})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.taxonomy.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, h.logger, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type GenreHandler struct {
	taxonomy *usecase.TaxonomyUsecase
	logger   *slog.Logger
}

func NewGenreHandler(taxonomy *usecase.TaxonomyUsecase, logger *slog.Logger) *GenreHandler {
	return &GenreHandler{taxonomy: taxonomy, logger: logger.With("component", "genre_handler")}
}

func (h *GenreHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	genres, err := h.taxonomy.ListGenres(c.Request.Context(), usecase.ListInput{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, h.logger, "list genres", err)
		return
	}

	out := make([]slugItem, len(genres))
	for i, g := range genres {
		out[i] = slugItem{Name: g.Name, Slug: g.Slug}
	}
	c.JSON(http.StatusOK, out)
}

func (h *GenreHandler) Create(c *gin.Context) {
	var req slugItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.taxonomy.CreateGenre(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondError(c, h.logger, "create genre", err)
		return
	}
	c.JSON(http.StatusCreated, slugItem{Name: created.Name, Slug: created.Slug})
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.taxonomy.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, h.logger, "delete genre", err)
		return
	}
	c.Status(http.StatusNoContent)
}
