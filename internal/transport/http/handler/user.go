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

type UserHandler struct {
	userUsecase *usecase.UserUsecase
	logger      *slog.Logger
}

func NewUserHandler(userUsecase *usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

type userResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.userUsecase.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, "list users", err)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Bio      string `json:"bio"`
	Role     string `json:"role"     binding:"omitempty,oneof=user moderator admin"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUsecase.Create(c.Request.Context(), usecase.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.userUsecase.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Bio   *string `json:"bio"`
	Role  *string `json:"role"  binding:"omitempty,oneof=user moderator admin"`
}

func (h *UserHandler) Update(c *gin.Context) {
	h.update(c, c.Param("username"))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userUsecase.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, h.logger, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the calling user's own record.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userUsecase.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, h.logger, "get self", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe patches the calling user's own record. Role changes are rejected
// in the usecase for non-admin actors.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.update(c, actor.Username)
}

func (h *UserHandler) update(c *gin.Context, username string) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdateUserInput{Email: req.Email, Bio: req.Bio}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userUsecase.Update(c.Request.Context(), actor, username, input)
	if err != nil {
		respondError(c, h.logger, "update user", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
