package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrStaleTransition is returned when a status update carries an
// observation time older than the donation's current updated_at.
// Payment webhooks arrive at-least-once and out of order; the existing
// status is kept and the caller absorbs this as a no-op.
var ErrStaleTransition = errors.New("stale transition")
