// Package store provides typed access to the persisted entities.
// Store-level failures are wrapped into the application error taxonomy
// at this boundary: callers see NotFoundError, ConflictError or
// InternalError, never raw storage detail.
package store

import (
	"errors"

	"gorm.io/gorm"

	"tasknest/apperr"
)

// Entity kinds used in not-found errors
const (
	KindUser         = "user"
	KindTeam         = "team"
	KindTeamMember   = "team member"
	KindProject      = "project"
	KindTask         = "task"
	KindComment      = "comment"
	KindNotification = "notification"
	KindStats        = "dashboard stats"
)

// Store wraps the database handle. It is passed explicitly into every
// component that needs persistence; there is no package-level instance.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for transport-level concerns
// (migrations, health checks) that live outside the typed surface
func (s *Store) DB() *gorm.DB {
	return s.db
}

// wrapRead converts a gorm read failure for entity kind/id
func wrapRead(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(kind, id)
	}
	return apperr.Internal(err)
}

// wrapWrite converts a gorm write failure, surfacing unique-constraint
// violations as conflicts
func wrapWrite(err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("%s", conflictMsg)
	}
	return apperr.Internal(err)
}
