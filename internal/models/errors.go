package models

import "errors"

// ErrNotFound is returned when a requested user, project or document
// record does not exist.
var ErrNotFound = errors.New("resource not found")
