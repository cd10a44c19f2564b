package ports

import (
	"context"
	"time"

	"skypolls/contexts/polling/poll-service/domain/entities"
)

type PollRepository interface {
	// CreatePoll persists the poll and its options as a single atomic
	// transaction. A failed option insert must leave no poll row behind.
	CreatePoll(ctx context.Context, poll entities.Poll) error
	// CastVote inserts a vote. The storage layer enforces (poll_id, user_id)
	// uniqueness, returned as ErrAlreadyVoted, and referential integrity to
	// the poll and option rows, returned as ErrPollNotFound.
	CastVote(ctx context.Context, vote entities.Vote) error
	// ListPolls returns polls newest-first, options in insertion order.
	ListPolls(ctx context.Context) ([]entities.Poll, error)
	ListVotesByPoll(ctx context.Context, pollID string) ([]entities.Vote, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Identity is the resolved caller identity handed to the write paths.
// DisplayName travels along so audit attribution needs no second lookup.
type Identity struct {
	UserID      string
	DisplayName string
}

// IdentityResolver is implemented by the user directory via a bootstrap
// adapter; failures arrive as this module's ErrUnauthenticated /
// ErrUnknownIdentity sentinels.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawID string) (Identity, error)
}

// CreatorProfile carries the display fields the list endpoint attaches to
// each poll.
type CreatorProfile struct {
	UserID      string
	Name        string
	AvatarColor string
}

type CreatorDirectory interface {
	GetCreator(ctx context.Context, userID string) (CreatorProfile, bool, error)
}

// AuditEvent is the outcome report sent to the audit trail.
type AuditEvent struct {
	Action    string
	ActorID   string
	ActorName string
	Metadata  map[string]any
}

// AuditRecorder is fail-open by construction: Record returns nothing, never
// blocks the caller, and its failures stay inside the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}
