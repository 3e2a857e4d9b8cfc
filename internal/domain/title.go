package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrSlugTaken        = errors.New("slug is already in use")
)

// Category and Genre are the two flat taxonomies titles are filed under.
// A title belongs to one category and any number of genres.

type Category struct {
	ID   string
	Name string
	Slug string
}

type Genre struct {
	ID   string
	Name string
	Slug string
}

type Title struct {
	ID          string
	Name        string
	Year        int
	Description *string
	Category    *Category
	Genres      []Genre

	// Rating is the integer-rounded mean review score, nil while unreviewed.
	Rating *int

	CreatedAt time.Time
}
