package domain

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this title")
	ErrCommentNotFound = errors.New("comment not found")
)

type Review struct {
	ID       string
	TitleID  string
	AuthorID string
	// Author is the author's username, denormalized for API responses.
	Author string
	Text   string
	Score  int // 1..10

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID       string
	ReviewID string
	AuthorID string
	Author   string
	Text     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
