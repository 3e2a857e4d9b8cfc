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

var reviewCols = []string{"id", "title_id", "author_id", "username", "text", "score", "created_at", "updated_at"}

func reviewRow(id, titleID, authorID string, score int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(reviewCols).
		AddRow(id, titleID, authorID, "reader", "great", score, now, now)
}

func newReviewRepo(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewReviewRepository(mock), mock
}

func expectRatingRefresh(mock pgxmock.PgxPoolIface, titleID string) {
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE titles`)).
		WithArgs(titleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
}

func TestCreateReview_RefreshesTitleRating(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reviews (title_id, author_id, text, score)`)).
		WithArgs("title-1", "user-1", "great", 9).
		WillReturnRows(reviewRow("review-1", "title-1", "user-1", 9))
	expectRatingRefresh(mock, "title-1")

	created, err := repo.Create(context.Background(), &domain.Review{
		TitleID:  "title-1",
		AuthorID: "user-1",
		Text:     "great",
		Score:    9,
	})
	require.NoError(t, err)
	assert.Equal(t, "review-1", created.ID)
	assert.Equal(t, "reader", created.Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_SecondReviewSameTitle_ReturnsErrDuplicateReview(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reviews (title_id, author_id, text, score)`)).
		WithArgs("title-1", "user-1", "again", 5).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_title_author_key"})

	_, err := repo.Create(context.Background(), &domain.Review{
		TitleID:  "title-1",
		AuthorID: "user-1",
		Text:     "again",
		Score:    5,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindReviewByID_ScopedToTitle(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.id = $1 AND r.title_id = $2`)).
		WithArgs("review-1", "other-title").
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := repo.FindByID(context.Background(), "other-title", "review-1")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReview_RefreshesTitleRating(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE reviews`)).
		WithArgs("review-1", "revised", 7).
		WillReturnRows(reviewRow("review-1", "title-1", "user-1", 7))
	expectRatingRefresh(mock, "title-1")

	updated, err := repo.Update(context.Background(), "review-1", "revised", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReview_RefreshesTitleRating(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1 RETURNING title_id`)).
		WithArgs("review-1").
		WillReturnRows(pgxmock.NewRows([]string{"title_id"}).AddRow("title-1"))
	expectRatingRefresh(mock, "title-1")

	err := repo.Delete(context.Background(), "review-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReview_Missing_ReturnsErrReviewNotFound(t *testing.T) {
	repo, mock := newReviewRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1 RETURNING title_id`)).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"title_id"}))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
