package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/metrics"
	"github.com/avelichko/reviewhub/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SignUp(ctx context.Context, username, email string) (*domain.User, error)
	Token(ctx context.Context, username, code string) (usecase.TokenPair, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

// signupRequest carries no binding validators: field-level checks live in the
// usecase so that every rejection renders as the same {field: [errors]} shape.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// POST /auth/signup
// Echoes back {username, email} on success; the confirmation code travels
// only through email.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.SignUp(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		respondError(c, h.logger, "signup", err)
		return
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, signupResponse{Username: user.Username, Email: user.Email})
}

type tokenRequest struct {
	Username         string `json:"username"          binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// POST /auth/token
// 404 when the username is unknown; a bad code gets the same generic 400
// regardless of why it failed.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authUsecase.Token(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.TokenExchangesTotal.WithLabelValues("unknown_user").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error()})
		case errors.Is(err, domain.ErrInvalidCode):
			metrics.TokenExchangesTotal.WithLabelValues("bad_code").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCode})
		default:
			metrics.TokenExchangesTotal.WithLabelValues("error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "token exchange", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.TokenExchangesTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"token": pair.Access})
}
