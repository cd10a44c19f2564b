package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skypolls/contexts/polling/poll-service/domain/entities"
	domainerrors "skypolls/contexts/polling/poll-service/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

// Migrate creates the poll, option, and vote tables when absent, including
// the unique (poll_id, user_id) vote index the cast path relies on and the
// foreign keys that keep vote rows anchored to an existing poll and option.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&pollModel{},
		&pollOptionModel{},
		&voteModel{},
	)
}

func (r *Repository) CreatePoll(ctx context.Context, poll entities.Poll) error {
	row := pollModelFromEntity(poll)
	optionRows := make([]pollOptionModel, 0, len(poll.Options))
	for _, option := range poll.Options {
		optionRows = append(optionRows, pollOptionModel{
			ID:       strings.TrimSpace(option.ID),
			PollID:   row.ID,
			Text:     option.Text,
			Position: option.Position,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Create(&optionRows).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return r.logError("polling_repo_create_poll_failed", err,
			"poll_id", row.ID,
			"creator_id", row.CreatorID,
		)
	}
	return nil
}

func (r *Repository) CastVote(ctx context.Context, vote entities.Vote) error {
	row := voteModel{
		ID:        strings.TrimSpace(vote.ID),
		PollID:    strings.TrimSpace(vote.PollID),
		OptionID:  strings.TrimSpace(vote.OptionID),
		UserID:    strings.TrimSpace(vote.UserID),
		CreatedAt: vote.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	create := r.db.WithContext(ctx).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrAlreadyVoted
		}
		if isForeignKeyViolation(create.Error) {
			return domainerrors.ErrPollNotFound
		}
		return r.logError("polling_repo_cast_vote_failed", create.Error,
			"poll_id", row.PollID,
			"user_id", row.UserID,
		)
	}
	return nil
}

func (r *Repository) ListPolls(ctx context.Context) ([]entities.Poll, error) {
	var rows []pollModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("polling_repo_list_polls_failed", err)
	}

	items := make([]entities.Poll, 0, len(rows))
	for _, row := range rows {
		var optionRows []pollOptionModel
		if err := r.db.WithContext(ctx).
			Where("poll_id = ?", row.ID).
			Order("position ASC").
			Find(&optionRows).Error; err != nil {
			return nil, r.logError("polling_repo_list_options_failed", err, "poll_id", row.ID)
		}
		items = append(items, row.toEntity(optionRows))
	}
	return items, nil
}

func (r *Repository) ListVotesByPoll(ctx context.Context, pollID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("polling_repo_list_votes_failed", err, "poll_id", strings.TrimSpace(pollID))
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Vote{
			ID:        row.ID,
			PollID:    row.PollID,
			OptionID:  row.OptionID,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "polling/poll-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("poll repository operation failed", fields...)
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

type pollModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	CreatorID      string    `gorm:"column:creator_id;not null;index"`
	Question       string    `gorm:"column:question;not null"`
	WeatherContext string    `gorm:"column:weather_context"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
}

func (pollModel) TableName() string {
	return "polls"
}

func pollModelFromEntity(poll entities.Poll) pollModel {
	row := pollModel{
		ID:             strings.TrimSpace(poll.ID),
		CreatorID:      strings.TrimSpace(poll.CreatorID),
		Question:       poll.Question,
		WeatherContext: poll.WeatherContext,
		CreatedAt:      poll.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m pollModel) toEntity(optionRows []pollOptionModel) entities.Poll {
	options := make([]entities.Option, 0, len(optionRows))
	for _, row := range optionRows {
		options = append(options, entities.Option{
			ID:       row.ID,
			PollID:   row.PollID,
			Text:     row.Text,
			Position: row.Position,
		})
	}
	return entities.Poll{
		ID:             m.ID,
		CreatorID:      m.CreatorID,
		Question:       m.Question,
		WeatherContext: m.WeatherContext,
		CreatedAt:      m.CreatedAt.UTC(),
		Options:        options,
	}
}

type pollOptionModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	PollID   string `gorm:"column:poll_id;not null;index"`
	Text     string `gorm:"column:text;not null"`
	Position int    `gorm:"column:position;not null"`

	Poll pollModel `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

func (pollOptionModel) TableName() string {
	return "poll_options"
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PollID    string    `gorm:"column:poll_id;not null;uniqueIndex:idx_votes_poll_user"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_votes_poll_user"`
	OptionID  string    `gorm:"column:option_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Poll   pollModel       `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
	Option pollOptionModel `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

func (voteModel) TableName() string {
	return "votes"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
