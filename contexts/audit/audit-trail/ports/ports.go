package ports

import (
	"context"
	"time"

	"skypolls/contexts/audit/audit-trail/domain/entities"
)

// EntryRepository is append-only on purpose: no update or delete methods
// exist anywhere in the module.
type EntryRepository interface {
	Append(ctx context.Context, entry entities.Entry) error
	ListEntries(ctx context.Context) ([]entities.Entry, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
