package repository

import "errors"

var (
	// ErrListingNotFound — объявление не найдено.
	ErrListingNotFound = errors.New("listing not found")
)
