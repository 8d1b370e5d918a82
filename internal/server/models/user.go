// Package models holds the persisted domain entities of the Threadhub
// backend. IDs are database-generated (bigserial); a zero ID means the
// entity has not been stored yet.
package models

import "time"

// User is a registered account. Password holds the opaque credential hash;
// it is never logged and never serialized into API responses.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
