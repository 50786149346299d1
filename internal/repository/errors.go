package repository

import "errors"

// ErrNotFound marks a missing row. Repositories wrap it with entity
// context; callers match with errors.Is.
var ErrNotFound = errors.New("not found")
