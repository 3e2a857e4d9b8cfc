package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/transport/http/middleware"
	"github.com/avelichko/reviewhub/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUsecase *usecase.ReviewUsecase
	logger        *slog.Logger
}

func NewReviewHandler(reviewUsecase *usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase, logger: logger.With("component", "review_handler")}
}

type reviewRequest struct {
	Text  string `json:"text"  binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Author:    r.Author,
		Text:      r.Text,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", domain.ErrTitleNotFound)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	reviews, err := h.reviewUsecase.List(c.Request.Context(), titleID, limit, offset)
	if err != nil {
		respondError(c, h.logger, "list reviews", err)
		return
	}

	out := make([]reviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = toReviewResponse(r)
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) GetByID(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, h.logger, "get review", err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	titleID, ok := pathID(c, "title_id", domain.ErrTitleNotFound)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.Create(c.Request.Context(), actor, usecase.CreateReviewInput{
		TitleID: titleID,
		Text:    req.Text,
		Score:   req.Score,
	})
	if err != nil {
		respondError(c, h.logger, "create review", err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.Update(c.Request.Context(), actor,
		titleID, reviewID, req.Text, req.Score)
	if err != nil {
		respondError(c, h.logger, "update review", err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	if err := h.reviewUsecase.Delete(c.Request.Context(), actor, titleID, reviewID); err != nil {
		respondError(c, h.logger, "delete review", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// reviewPath validates the title and review ids of a nested review route.
func reviewPath(c *gin.Context) (titleID, reviewID string, ok bool) {
	if titleID, ok = pathID(c, "title_id", domain.ErrTitleNotFound); !ok {
		return "", "", false
	}
	if reviewID, ok = pathID(c, "review_id", domain.ErrReviewNotFound); !ok {
		return "", "", false
	}
	return titleID, reviewID, true
}
