package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, bio, role, confirmation_seq, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindOrCreate implements the signup lookup. It reuses an exact
// username+email match, rejects partial collisions, and resolves a
// concurrent-insert race by re-reading the winning row.
func (r *UserRepository) FindOrCreate(ctx context.Context, username, email string) (*domain.User, error) {
	existing, err := r.findByPair(ctx, username, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, username, email)
	created, err := scanUser(row)
	if err == nil {
		return created, nil
	}

	// A concurrent signup for the same identity may have won the insert.
	// The unique constraint is the source of truth (no duplicate rows can
	// exist), so re-read and let findByPair classify the outcome.
	if isUniqueViolation(err, "") {
		return r.findByPair(ctx, username, email)
	}
	return nil, fmt.Errorf("create user: %w", err)
}

// findByPair fetches rows colliding with the pair on either unique column.
// Exactly-matching row → returned. Colliding row → taken error.
func (r *UserRepository) findByPair(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2`

	rows, err := r.db.Query(ctx, query, username, email)
	if err != nil {
		return nil, fmt.Errorf("find user by pair: %w", err)
	}
	defer rows.Close()

	var match *domain.User
	var collision error
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		switch {
		case u.Username == username && u.Email == email:
			match = u
		case u.Username == username:
			collision = domain.ErrUsernameTaken
		default:
			collision = domain.ErrEmailTaken
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find user by pair: %w", err)
	}

	if match != nil {
		return match, nil
	}
	if collision != nil {
		return nil, collision
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) BumpConfirmationSeq(ctx context.Context, id string) (*domain.User, error) {
	query := `
		UPDATE users
		SET    confirmation_seq = confirmation_seq + 1,
		       updated_at       = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, id)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY username ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, email, bio, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, user.Username, user.Email, user.Bio, user.Role)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, domain.ErrUsernameTaken
		}
		if isUniqueViolation(err, "users_email_key") {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		UPDATE users
		SET    email      = $2,
		       bio        = $3,
		       role       = $4,
		       updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, user.ID, user.Email, user.Bio, user.Role)
	updated, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Bio, &u.Role,
		&u.ConfirmationSeq, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
