package entities

import "time"

// User is a directory record. Immutable after creation; polls and votes
// reference it by ID only.
type User struct {
	ID          string
	Name        string
	AvatarColor string
	CreatedAt   time.Time
}
