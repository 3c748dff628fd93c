package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a conditional update loses, e.g. a stock
	// adjustment that would take a product's quantity below zero.
	ErrConflict = errors.New("conflicting update")
)
