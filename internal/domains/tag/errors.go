package tag

import "errors"

var (
	ErrNotFound      = errors.New("tag not found")
	ErrDuplicateSlug = errors.New("tag slug already exists")
)
