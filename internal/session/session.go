// Package session keeps the learner profile for the lifetime of a session.
// Profiles are configuration, not stored entities: they start from
// defaults, are mutated by the front end and expire with the session.
package session

import (
	"context"

	"mentora/internal/rag/schema"
)

// ProfileStore holds session-scoped learner profiles keyed by session id.
// Get never fails on an unknown session; it returns the default profile so
// a fresh session behaves like one that never touched its settings.
type ProfileStore interface {
	Get(ctx context.Context, sessionID string) (*schema.UserProfile, error)
	Save(ctx context.Context, sessionID string, profile *schema.UserProfile) error
	Delete(ctx context.Context, sessionID string) error
}
