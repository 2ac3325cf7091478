package repository

import "templatebot/internal/entities"

// ProfileStore is the durable per-user settings store. Every mutation
// persists synchronously; persistence failures propagate, they are never
// silently dropped. Implementations must be safe for concurrent writers on
// the same user key (last-writer-wins is acceptable).
type ProfileStore interface {
	// Get returns the profile for a user, creating an empty one lazily.
	// The returned value is a copy; mutations go through the setters.
	Get(userID int64) (*entities.UserProfile, error)

	// SetAuthorized records a passed primary gate.
	SetAuthorized(userID int64, authorized bool) error

	// SetUnlocked records a passed secondary gate for one template.
	SetUnlocked(userID int64, template string) error

	// SetRepNames replaces the saved representative-name list.
	SetRepNames(userID int64, names []string) error

	// IncrementGenerated bumps the generated-document counter and returns
	// the new value.
	IncrementGenerated(userID int64) (int, error)

	// Stats returns the number of known users and the total documents
	// generated across all of them, for the admin surface.
	Stats() (users, generated int, err error)
}
