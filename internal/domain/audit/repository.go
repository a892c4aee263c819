package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrMalformedEntry = errors.New("audit entry requires action code and admin id")

// Filter narrows List results; zero values mean "any".
type Filter struct {
	ActionCode ActionCode
	TargetID   *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Repository is append-only. List returns the most recent entries first.
type Repository interface {
	AppendEntry(ctx context.Context, e Entry) (*Entry, error)
	ListEntries(ctx context.Context, f Filter) (Entries, error)
	CountByAction(ctx context.Context) (map[ActionCode]int, error)
}

// Validate checks the fields a store requires before appending.
func (e Entry) Validate() error {
	if e.ActionCode == "" || !e.ActionCode.Valid() || e.AdminID == "" {
		return ErrMalformedEntry
	}
	return nil
}

// NormalizedLimit clamps Limit into [1, MaxListLimit].
func (f Filter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Match reports whether e passes every set criterion of f.
func (f Filter) Match(e *Entry) bool {
	if f.ActionCode != "" && e.ActionCode != f.ActionCode {
		return false
	}
	if f.TargetID != nil && (e.TargetID == nil || *e.TargetID != *f.TargetID) {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.CreatedAt.After(*f.To) {
		return false
	}
	return true
}
