package domain

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrUserRequired    = errors.New("user id is required")
	ErrUserNotFound    = errors.New("user not found")
	ErrFeedUnavailable = errors.New("article feed unavailable")
	ErrInvalidArticle  = errors.New("invalid article")
)
