package entities

import "time"

// Entry is one append-only audit record. ActorID is empty for anonymous or
// system actions. CreatedBy and UpdatedBy both carry the actor display name
// and UpdatedAt equals CreatedAt at write time; the redundancy exists only
// because the fingerprint formula covers the update fields.
type Entry struct {
	ID          string
	Action      string
	ActorID     string
	Metadata    map[string]any
	CreatedAt   time.Time
	CreatedBy   string
	UpdatedAt   time.Time
	UpdatedBy   string
	Fingerprint string
}
