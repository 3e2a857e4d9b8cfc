package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer  = "Internal server error"
	errForbidden       = "Forbidden"
	errInvalidCode     = "Invalid confirmation code"
	errDuplicateReview = "You have already reviewed this title"
)

// respondError maps domain errors onto the API error taxonomy: field errors
// and conflicts → 400, permission failures → 403, missing resources → 404,
// everything else → logged 500 with a fixed message.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.Is(err, domain.ErrDuplicateReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateReview})
	case errors.Is(err, domain.ErrSlugTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTitleNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrGenreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
