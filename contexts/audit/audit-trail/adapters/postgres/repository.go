package postgresadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"skypolls/contexts/audit/audit-trail/domain/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the audit_logs table when absent. The table has no update
// or delete path in this module; rows only ever accumulate.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&auditLogModel{})
}

func (r *Repository) Append(ctx context.Context, entry entities.Entry) error {
	row, err := auditLogModelFromEntity(entry)
	if err != nil {
		return r.logError("audit_repo_encode_failed", err, "entry_id", entry.ID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("audit_repo_append_failed", err,
			"entry_id", entry.ID,
			"action", entry.Action,
		)
	}
	return nil
}

func (r *Repository) ListEntries(ctx context.Context) ([]entities.Entry, error) {
	var rows []auditLogModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("audit_repo_list_failed", err)
	}

	items := make([]entities.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntity()
		if err != nil {
			return nil, r.logError("audit_repo_decode_failed", err, "entry_id", row.ID)
		}
		items = append(items, entry)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "audit/audit-trail",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("audit repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type auditLogModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Action    string    `gorm:"column:action;type:varchar(255);not null;index"`
	UserID    *string   `gorm:"column:user_id;type:varchar(255)"`
	Metadata  []byte    `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(255)"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(255)"`
	RowHash   string    `gorm:"column:row_hash;type:varchar(64);not null"`
}

func (auditLogModel) TableName() string {
	return "audit_logs"
}

func auditLogModelFromEntity(entry entities.Entry) (auditLogModel, error) {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return auditLogModel{}, err
	}

	var userID *string
	if actor := strings.TrimSpace(entry.ActorID); actor != "" {
		userID = &actor
	}

	return auditLogModel{
		ID:        strings.TrimSpace(entry.ID),
		Action:    entry.Action,
		UserID:    userID,
		Metadata:  raw,
		CreatedAt: entry.CreatedAt.UTC(),
		CreatedBy: entry.CreatedBy,
		UpdatedAt: entry.UpdatedAt.UTC(),
		UpdatedBy: entry.UpdatedBy,
		RowHash:   entry.Fingerprint,
	}, nil
}

func (m auditLogModel) toEntity() (entities.Entry, error) {
	var metadata map[string]any
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return entities.Entry{}, err
		}
	}

	actorID := ""
	if m.UserID != nil {
		actorID = *m.UserID
	}

	return entities.Entry{
		ID:          m.ID,
		Action:      m.Action,
		ActorID:     actorID,
		Metadata:    metadata,
		CreatedAt:   m.CreatedAt.UTC(),
		CreatedBy:   m.CreatedBy,
		UpdatedAt:   m.UpdatedAt.UTC(),
		UpdatedBy:   m.UpdatedBy,
		Fingerprint: m.RowHash,
	}, nil
}
