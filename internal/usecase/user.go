package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
)

// UserUsecase backs the admin user surface and /users/me.
type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return u.users.List(ctx, limit, offset)
}

func (u *UserUsecase) Get(ctx context.Context, username string) (*domain.User, error) {
	return u.users.FindByUsername(ctx, username)
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

type CreateUserInput struct {
	Username string
	Email    string
	Bio      string
	Role     domain.Role
}

// Create is the admin path: the record is created directly, with no
// confirmation email. The user still signs in through the normal code flow.
func (u *UserUsecase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if errs := validateSignup(input.Username, input.Email); len(errs) > 0 {
		return nil, errs
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.FieldErrors{"role": {"must be one of user, moderator, admin"}}
	}

	created, err := u.users.Create(ctx, &domain.User{
		Username: input.Username,
		Email:    input.Email,
		Bio:      input.Bio,
		Role:     role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return nil, domain.FieldErrors{"username": {"this username is already taken"}}
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, domain.FieldErrors{"email": {"this email is already taken"}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

type UpdateUserInput struct {
	Email *string
	Bio   *string
	Role  *domain.Role
}

// Update patches a user record. Role changes are rejected unless the actor
// is an admin — /users/me routes here with the caller as both actor and
// target, and users must not promote themselves.
func (u *UserUsecase) Update(ctx context.Context, actor domain.Actor, username string, input UpdateUserInput) (*domain.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email == "" || len(*input.Email) > maxEmailLen {
			return nil, domain.FieldErrors{"email": {"must be a valid email address"}}
		}
		user.Email = *input.Email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		if actor.Role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
		if !input.Role.Valid() {
			return nil, domain.FieldErrors{"role": {"must be one of user, moderator, admin"}}
		}
		user.Role = *input.Role
	}

	updated, err := u.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.FieldErrors{"email": {"this email is already taken"}}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, username string) error {
	return u.users.Delete(ctx, username)
}
