package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "email", "bio", "role", "confirmation_seq", "created_at", "updated_at"}

func userRow(id, username, email string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).
		AddRow(id, username, email, "", domain.RoleUser, int64(1), now, now)
}

func newUserRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestFindOrCreate_ExactMatch_ReusesRow(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("reader", "reader@example.com").
		WillReturnRows(userRow("user-1", "reader", "reader@example.com"))

	user, err := repo.FindOrCreate(context.Background(), "reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_UsernameCollision_ReturnsErrUsernameTaken(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("reader", "new@example.com").
		WillReturnRows(userRow("user-1", "reader", "old@example.com"))

	_, err := repo.FindOrCreate(context.Background(), "reader", "new@example.com")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_EmailCollision_ReturnsErrEmailTaken(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("newname", "reader@example.com").
		WillReturnRows(userRow("user-1", "reader", "reader@example.com"))

	_, err := repo.FindOrCreate(context.Background(), "newname", "reader@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_NewPair_Inserts(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("reader", "reader@example.com").
		WillReturnRows(pgxmock.NewRows(userCols))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email)`)).
		WithArgs("reader", "reader@example.com").
		WillReturnRows(userRow("user-9", "reader", "reader@example.com"))

	user, err := repo.FindOrCreate(context.Background(), "reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-9", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreate_InsertRace_ReReadsWinner(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("reader", "reader@example.com").
		WillReturnRows(pgxmock.NewRows(userCols))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email)`)).
		WithArgs("reader", "reader@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	mock.ExpectQuery(`WHERE username = \$1 OR email = \$2`).
		WithArgs("reader", "reader@example.com").
		WillReturnRows(userRow("user-1", "reader", "reader@example.com"))

	user, err := repo.FindOrCreate(context.Background(), "reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBumpConfirmationSeq_ReturnsUpdatedRow(t *testing.T) {
	repo, mock := newUserRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SET    confirmation_seq = confirmation_seq + 1`)).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("user-1", "reader", "reader@example.com", "", domain.RoleUser, int64(2), now, now))

	user, err := repo.BumpConfirmationSeq(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ConfirmationSeq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail_ReturnsErrEmailTaken(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username, email, bio, role)`)).
		WithArgs("reader", "reader@example.com", "", domain.RoleUser).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &domain.User{
		Username: "reader",
		Email:    "reader@example.com",
		Role:     domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_Missing_ReturnsErrUserNotFound(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername_Missing_ReturnsErrUserNotFound(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userCols))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
