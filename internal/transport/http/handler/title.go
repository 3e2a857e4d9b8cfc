package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
	"github.com/avelichko/reviewhub/internal/usecase"
	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleUsecase *usecase.TitleUsecase
	logger       *slog.Logger
}

func NewTitleHandler(titleUsecase *usecase.TitleUsecase, logger *slog.Logger) *TitleHandler {
	return &TitleHandler{titleUsecase: titleUsecase, logger: logger.With("component", "title_handler")}
}

type titleRequest struct {
	Name        string   `json:"name"     binding:"required"`
	Year        int      `json:"year"     binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genres      []string `json:"genre"`
}

type titleResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Year        int        `json:"year"`
	Rating      *int       `json:"rating"`
	Description *string    `json:"description,omitempty"`
	Genres      []slugItem `json:"genre"`
	Category    *slugItem  `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toTitleResponse(t *domain.Title) titleResponse {
	resp := titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genres:      make([]slugItem, len(t.Genres)),
		CreatedAt:   t.CreatedAt,
	}
	for i, g := range t.Genres {
		resp.Genres[i] = slugItem{Name: g.Name, Slug: g.Slug}
	}
	if t.Category != nil {
		resp.Category = &slugItem{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	return resp
}

func (h *TitleHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
		Limit:        limit,
		Offset:       offset,
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		filter.Year = &year
	}

	titles, err := h.titleUsecase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "list titles", err)
		return
	}

	out := make([]titleResponse, len(titles))
	for i, t := range titles {
		out[i] = toTitleResponse(t)
	}
	c.JSON(http.StatusOK, out)
}

func (h *TitleHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "title_id", domain.ErrTitleNotFound)
	if !ok {
		return
	}

	title, err := h.titleUsecase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get title", err)
		return
	}
	c.JSON(http.StatusOK, toTitleResponse(title))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleUsecase.Create(c.Request.Context(), usecase.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		respondError(c, h.logger, "create title", err)
		return
	}
	c.JSON(http.StatusCreated, toTitleResponse(title))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id", domain.ErrTitleNotFound)
	if !ok {
		return
	}

	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleUsecase.Update(c.Request.Context(), id, usecase.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		respondError(c, h.logger, "update title", err)
		return
	}
	c.JSON(http.StatusOK, toTitleResponse(title))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id", domain.ErrTitleNotFound)
	if !ok {
		return
	}

	if err := h.titleUsecase.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete title", err)
		return
	}
	c.Status(http.StatusNoContent)
}
