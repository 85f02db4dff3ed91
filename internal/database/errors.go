package database

import "errors"

// Domain error taxonomy. Store operations wrap these so handlers can map them
// to HTTP statuses with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)
