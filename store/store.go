// Package store implements team-scoped persistence for every business
// entity. All queries against team-owned tables take the team ID as an
// explicit parameter; callers obtain it from the tenancy guard and must
// never query across teams.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an update or get targets a missing id.
var ErrNotFound = errors.New("record not found")

// DefaultListLimit caps list queries when the caller does not specify one.
const DefaultListLimit = 50

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
