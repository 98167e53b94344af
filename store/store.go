package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups that match no row. Handlers map it to
// a 404/redirect instead of treating it as a failure.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or empty required field on create.
// Nothing is written when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// CascadeError wraps a failure inside a multi-entity unit of work (cascade
// delete or seed insert). The enclosing transaction has been rolled back.
type CascadeError struct {
	Op  string
	Err error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// Store provides the entity model: create, read, partial update and
// cascading delete for customers, sites, jobs and entries.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn against a transaction-bound Store. The transaction commits
// when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func missing(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// notFoundOr maps gorm's sentinel onto the store's.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
