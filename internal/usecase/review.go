package usecase

import (
	"context"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
)

type ReviewUsecase struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewUsecase(reviews repository.ReviewRepository, titles repository.TitleRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, titles: titles}
}

func (u *ReviewUsecase) List(ctx context.Context, titleID string, limit, offset int) ([]*domain.Review, error) {
	if err := u.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return u.reviews.ListByTitle(ctx, titleID, limit, offset)
}

func (u *ReviewUsecase) Get(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	return u.reviews.FindByID(ctx, titleID, reviewID)
}

type CreateReviewInput struct {
	TitleID string
	Text    string
	Score   int
}

// Create writes the review with the acting user as author. The repository's
// unique constraint turns a second review for the same title into
// domain.ErrDuplicateReview.
func (u *ReviewUsecase) Create(ctx context.Context, actor domain.Actor, input CreateReviewInput) (*domain.Review, error) {
	if err := u.requireTitle(ctx, input.TitleID); err != nil {
		return nil, err
	}

	return u.reviews.Create(ctx, &domain.Review{
		TitleID:  input.TitleID,
		AuthorID: actor.ID,
		Text:     input.Text,
		Score:    input.Score,
	})
}

func (u *ReviewUsecase) Update(ctx context.Context, actor domain.Actor, titleID, reviewID, text string, score int) (*domain.Review, error) {
	review, err := u.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, review.AuthorID) {
		return nil, domain.ErrForbidden
	}
	return u.reviews.Update(ctx, review.ID, text, score)
}

func (u *ReviewUsecase) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID string) error {
	review, err := u.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !canEdit(actor, review.AuthorID) {
		return domain.ErrForbidden
	}
	return u.reviews.Delete(ctx, review.ID)
}

func (u *ReviewUsecase) requireTitle(ctx context.Context, titleID string) error {
	exists, err := u.titles.Exists(ctx, titleID)
	if err != nil {
		return fmt.Errorf("check title: %w", err)
	}
	if !exists {
		return domain.ErrTitleNotFound
	}
	return nil
}

// canEdit implements the per-object policy: authors manage their own
// content, staff manage anyone's.
func canEdit(actor domain.Actor, authorID string) bool {
	return actor.ID == authorID || actor.Role.Staff()
}
