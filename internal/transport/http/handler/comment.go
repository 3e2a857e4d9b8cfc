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

type CommentHandler struct {
	commentUsecase *usecase.CommentUsecase
	logger         *slog.Logger
}

func NewCommentHandler(commentUsecase *usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase, logger: logger.With("component", "comment_handler")}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(cm *domain.Comment) commentResponse {
	return commentResponse{
		ID:        cm.ID,
		Author:    cm.Author,
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	comments, err := h.commentUsecase.List(c.Request.Context(),
		titleID, reviewID, limit, offset)
	if err != nil {
		respondError(c, h.logger, "list comments", err)
		return
	}

	out := make([]commentResponse, len(comments))
	for i, cm := range comments {
		out[i] = toCommentResponse(cm)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentHandler) GetByID(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := h.commentUsecase.Get(c.Request.Context(),
		titleID, reviewID, commentID)
	if err != nil {
		respondError(c, h.logger, "get comment", err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	comment, err := h.commentUsecase.Create(c.Request.Context(), actor,
		titleID, reviewID, req.Text)
	if err != nil {
		respondError(c, h.logger, "create comment", err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := h.commentUsecase.Update(c.Request.Context(), actor,
		titleID, reviewID, commentID, req.Text)
	if err != nil {
		respondError(c, h.logger, "update comment", err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	if err := h.commentUsecase.Delete(c.Request.Context(), actor,
		titleID, reviewID, commentID); err != nil {
		respondError(c, h.logger, "delete comment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// commentPath validates all three ids of a nested comment route.
func commentPath(c *gin.Context) (titleID, reviewID, commentID string, ok bool) {
	if titleID, reviewID, ok = reviewPath(c); !ok {
		return "", "", "", false
	}
	if commentID, ok = pathID(c, "id", domain.ErrCommentNotFound); !ok {
		return "", "", "", false
	}
	return titleID, reviewID, commentID, true
}
