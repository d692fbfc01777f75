package category

import "errors"

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateSlug = errors.New("category slug already exists")
)
