package models

import "time"

// RefreshToken is an opaque, single-use token persisted for session renewal.
type RefreshToken struct {
	ID        string
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
