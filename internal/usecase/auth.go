package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/avelichko/reviewhub/internal/confirm"
	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/email"
	"github.com/avelichko/reviewhub/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultAccessTTL  = 24 * time.Hour
	defaultRefreshTTL = 30 * 24 * time.Hour

	maxUsernameLen = 150
	maxEmailLen    = 254

	// reservedUsername aliases the caller on /users/me, so nobody may own it.
	reservedUsername = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9.@+_-]+$`)

	// emailPattern only rules out strings that cannot be an address; real
	// verification is the confirmation code landing in the inbox.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// TokenPair holds both signed tokens. Only the access token is surfaced over
// HTTP; the refresh token exists for downstream services that mint their own
// sessions from it.
type TokenPair struct {
	Access  string
	Refresh string
}

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	codes      *confirm.Generator
	jwtKey     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, codes *confirm.Generator, jwtKey []byte, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		email:      emailSender,
		codes:      codes,
		jwtKey:     jwtKey,
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
		logger:     logger.With("component", "auth_usecase"),
	}
}

// SignUp finds or creates the user for this username+email pair, rotates its
// confirmation sequence (invalidating any previously emailed code) and sends
// the freshly derived code. Email delivery is best-effort: a send failure is
// logged and the signup still succeeds, since the user record is already in
// place and the code can be re-requested.
func (u *AuthUsecase) SignUp(ctx context.Context, username, emailAddr string) (*domain.User, error) {
	if errs := validateSignup(username, emailAddr); len(errs) > 0 {
		return nil, errs
	}

	user, err := u.users.FindOrCreate(ctx, username, emailAddr)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return nil, domain.FieldErrors{"username": {"this username is already registered with a different email"}}
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, domain.FieldErrors{"email": {"this email is already registered with a different username"}}
		}
		return nil, fmt.Errorf("find or create user: %w", err)
	}

	user, err = u.users.BumpConfirmationSeq(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("bump confirmation seq: %w", err)
	}

	code := u.codes.Issue(user)
	subject := "Your reviewhub confirmation code"
	body := fmt.Sprintf("Hello, %s!\n\nYour confirmation code for reviewhub is: %s\n", user.Username, code)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send confirmation code", "username", user.Username, "error", err)
	}

	return user, nil
}

// Token exchanges a username+confirmation-code pair for signed tokens.
// Verification is a pure recomputation from the user's current state: the
// same still-valid code can be exchanged repeatedly until the next signup
// rotates the sequence.
func (u *AuthUsecase) Token(ctx context.Context, username, code string) (TokenPair, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return TokenPair{}, domain.ErrUserNotFound
		}
		return TokenPair{}, fmt.Errorf("find user: %w", err)
	}

	if !u.codes.Verify(user, code) {
		return TokenPair{}, domain.ErrInvalidCode
	}

	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(u.accessTTL).Unix(),
	})
	signedAccess, err := access.SignedString(u.jwtKey)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(u.refreshTTL).Unix(),
	})
	signedRefresh, err := refresh.SignedString(u.jwtKey)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return TokenPair{Access: signedAccess, Refresh: signedRefresh}, nil
}

func validateSignup(username, emailAddr string) domain.FieldErrors {
	errs := domain.FieldErrors{}

	switch {
	case username == "":
		errs.Add("username", "this field is required")
	case len(username) > maxUsernameLen:
		errs.Add("username", fmt.Sprintf("must be at most %d characters", maxUsernameLen))
	case !usernamePattern.MatchString(username):
		errs.Add("username", "may contain only letters, digits and .@+_- characters")
	case username == reservedUsername:
		errs.Add("username", `"me" is reserved and cannot be used as a username`)
	}

	switch {
	case emailAddr == "":
		errs.Add("email", "this field is required")
	case len(emailAddr) > maxEmailLen:
		errs.Add("email", fmt.Sprintf("must be at most %d characters", maxEmailLen))
	case !emailPattern.MatchString(emailAddr):
		errs.Add("email", "must be a valid email address")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
