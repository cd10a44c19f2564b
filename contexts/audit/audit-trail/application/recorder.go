package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skypolls/contexts/audit/audit-trail/domain/entities"
	"skypolls/contexts/audit/audit-trail/ports"
)

const defaultQueueSize = 256

type RecordInput struct {
	Action    string
	ActorID   string
	ActorName string
	Metadata  map[string]any
}

// Recorder appends audit entries asynchronously. Record never returns an
// error and never blocks: entries go through a buffered queue drained by a
// single writer goroutine, and when the queue is full the entry is dropped
// with a warning. Append failures are logged to the operator channel only;
// nothing propagates to the operation being audited.
type Recorder struct {
	entries ports.EntryRepository
	clock   ports.Clock
	idGen   ports.IDGenerator
	secret  string
	logger  *slog.Logger

	queue  chan entities.Entry
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

func NewRecorder(
	entries ports.EntryRepository,
	clock ports.Clock,
	idGen ports.IDGenerator,
	secret string,
	queueSize int,
	logger *slog.Logger,
) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	r := &Recorder{
		entries: entries,
		clock:   clock,
		idGen:   idGen,
		secret:  secret,
		logger:  logger,
		queue:   make(chan entities.Entry, queueSize),
		done:    make(chan struct{}),
	}
	go r.drain()
	return r
}

func (r *Recorder) Record(ctx context.Context, input RecordInput) {
	entry, err := r.buildEntry(ctx, input)
	if err != nil {
		r.logger.Warn("audit entry build failed; entry dropped",
			"event", "audit_record_build_failed",
			"module", "audit/audit-trail",
			"layer", "application",
			"action", input.Action,
			"error", err.Error(),
		)
		return
	}

	// The read lock excludes Close, so the queue cannot be closed while a
	// send is in flight; entries arriving after shutdown are dropped.
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn("audit recorder closed; entry dropped",
			"event", "audit_record_after_close",
			"module", "audit/audit-trail",
			"layer", "application",
			"action", entry.Action,
			"entry_id", entry.ID,
		)
		return
	}

	select {
	case r.queue <- entry:
	default:
		r.logger.Warn("audit queue full; entry dropped",
			"event", "audit_record_queue_full",
			"module", "audit/audit-trail",
			"layer", "application",
			"action", entry.Action,
			"entry_id", entry.ID,
		)
	}
}

// Close stops accepting entries and waits for the queue to flush.
func (r *Recorder) Close() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.queue)
	})
	<-r.done
}

func (r *Recorder) buildEntry(ctx context.Context, input RecordInput) (entities.Entry, error) {
	entryID, err := r.idGen.NewID(ctx)
	if err != nil {
		return entities.Entry{}, err
	}

	now := TruncateToMillis(r.now())
	actorName := strings.TrimSpace(input.ActorName)
	if actorName == "" {
		actorName = "SYSTEM"
	}
	entry := entities.Entry{
		ID:        entryID,
		Action:    strings.TrimSpace(input.Action),
		ActorID:   strings.TrimSpace(input.ActorID),
		Metadata:  input.Metadata,
		CreatedAt: now,
		CreatedBy: actorName,
		UpdatedAt: now,
		UpdatedBy: actorName,
	}

	fingerprint, err := Fingerprint(entry, r.secret)
	if err != nil {
		return entities.Entry{}, err
	}
	entry.Fingerprint = fingerprint
	return entry, nil
}

func (r *Recorder) drain() {
	defer close(r.done)
	for entry := range r.queue {
		// Detached from the caller's request context: the primary
		// operation may already have returned.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := r.entries.Append(ctx, entry)
		cancel()
		if err != nil {
			r.logger.Error("audit append failed; entry lost",
				"event", "audit_append_failed",
				"module", "audit/audit-trail",
				"layer", "application",
				"action", entry.Action,
				"entry_id", entry.ID,
				"error", err.Error(),
			)
		}
	}
}

func (r *Recorder) now() time.Time {
	if r.clock == nil {
		return time.Now().UTC()
	}
	return r.clock.Now().UTC()
}
