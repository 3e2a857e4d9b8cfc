package httptransport

import (
	"log/slog"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/transport/http/handler"
	"github.com/avelichko/reviewhub/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// NewRouter declares the per-endpoint access policy explicitly in the route
// table: anonymous, authenticated, or role-restricted.
func NewRouter(logger *slog.Logger, h Handlers, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Anonymous auth flow
	auth := r.Group("/auth")
	auth.POST("/signup", h.Auth.SignUp)
	auth.POST("/token", h.Auth.Token)

	// Users: admin surface plus the caller's own record
	users := r.Group("/users", authMW)
	users.GET("/me", h.User.Me)
	users.PATCH("/me", h.User.UpdateMe)
	users.GET("", adminOnly, h.User.List)
	users.POST("", adminOnly, h.User.Create)
	users.GET("/:username", adminOnly, h.User.GetByUsername)
	users.PATCH("/:username", adminOnly, h.User.Update)
	users.DELETE("/:username", adminOnly, h.User.Delete)

	// Taxonomies: public reads, admin writes
	categories := r.Group("/categories")
	categories.GET("", h.Category.List)
	categories.POST("", authMW, adminOnly, h.Category.Create)
	categories.DELETE("/:slug", authMW, adminOnly, h.Category.Delete)

	genres := r.Group("/genres")
	genres.GET("", h.Genre.List)
	genres.POST("", authMW, adminOnly, h.Genre.Create)
	genres.DELETE("/:slug", authMW, adminOnly, h.Genre.Delete)

	// Titles: public reads, admin writes
	titles := r.Group("/titles")
	titles.GET("", h.Title.List)
	titles.GET("/:title_id", h.Title.GetByID)
	titles.POST("", authMW, adminOnly, h.Title.Create)
	titles.PATCH("/:title_id", authMW, adminOnly, h.Title.Update)
	titles.DELETE("/:title_id", authMW, adminOnly, h.Title.Delete)

	// Reviews nested under titles: public reads, authenticated writes;
	// author/staff checks live in the usecase.
	reviews := r.Group("/titles/:title_id/reviews")
	reviews.GET("", h.Review.List)
	reviews.GET("/:review_id", h.Review.GetByID)
	reviews.POST("", authMW, h.Review.Create)
	reviews.PATCH("/:review_id", authMW, h.Review.Update)
	reviews.DELETE("/:review_id", authMW, h.Review.Delete)

	// Comments nested under reviews
	comments := r.Group("/titles/:title_id/reviews/:review_id/comments")
	comments.GET("", h.Comment.List)
	comments.GET("/:id", h.Comment.GetByID)
	comments.POST("", authMW, h.Comment.Create)
	comments.PATCH("/:id", authMW, h.Comment.Update)
	comments.DELETE("/:id", authMW, h.Comment.Delete)

	return r
}
