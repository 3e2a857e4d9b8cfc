package usecase

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
)

type CommentUsecase struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentUsecase(comments repository.CommentRepository, reviews repository.ReviewRepository) *CommentUsecase {
	return &CommentUsecase{comments: comments, reviews: reviews}
}

func (u *CommentUsecase) List(ctx context.Context, titleID, reviewID string, limit, offset int) ([]*domain.Comment, error) {
	if _, err := u.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return u.comments.ListByReview(ctx, reviewID, limit, offset)
}

func (u *CommentUsecase) Get(ctx context.Context, titleID, reviewID, commentID string) (*domain.Comment, error) {
	if _, err := u.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return u.comments.FindByID(ctx, reviewID, commentID)
}

func (u *CommentUsecase) Create(ctx context.Context, actor domain.Actor, titleID, reviewID, text string) (*domain.Comment, error) {
	// The parent review must exist and belong to the title in the path.
	if _, err := u.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	return u.comments.Create(ctx, &domain.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	})
}

func (u *CommentUsecase) Update(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID, text string) (*domain.Comment, error) {
	if _, err := u.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := u.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, comment.AuthorID) {
		return nil, domain.ErrForbidden
	}
	return u.comments.Update(ctx, comment.ID, text)
}

func (u *CommentUsecase) Delete(ctx context.Context, actor domain.Actor, titleID, reviewID, commentID string) error {
	if _, err := u.reviews.FindByID(ctx, titleID, reviewID); err != nil {
		return err
	}
	comment, err := u.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if !canEdit(actor, comment.AuthorID) {
		return domain.ErrForbidden
	}
	return u.comments.Delete(ctx, comment.ID)
}
