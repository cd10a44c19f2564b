package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skypolls/contexts/polling/poll-service/domain/entities"
	domainerrors "skypolls/contexts/polling/poll-service/domain/errors"
	"skypolls/contexts/polling/poll-service/ports"
)

type CreatePollCommand struct {
	RawUserID      string
	Question       string
	OptionTexts    []string
	WeatherContext string
}

type CreatePollResult struct {
	PollID string
}

// PollUseCase orchestrates the mutating flows: resolve identity, run the
// store operation, and report the outcome to the audit trail regardless of
// how the operation ended.
type PollUseCase struct {
	Polls    ports.PollRepository
	Identity ports.IdentityResolver
	Audit    ports.AuditRecorder
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc PollUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (CreatePollResult, error) {
	logger := resolveLogger(uc.Logger)

	actor, err := uc.Identity.Resolve(ctx, cmd.RawUserID)
	if err != nil {
		return CreatePollResult{}, err
	}

	question := strings.TrimSpace(cmd.Question)
	optionTexts := make([]string, 0, len(cmd.OptionTexts))
	for _, text := range cmd.OptionTexts {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			optionTexts = append(optionTexts, trimmed)
		}
	}
	if question == "" || len(optionTexts) < 2 {
		logger.Warn("poll create validation failed",
			"event", "polling_poll_create_validation_failed",
			"module", "polling/poll-service",
			"layer", "application",
			"user_id", actor.UserID,
		)
		return CreatePollResult{}, domainerrors.ErrInvalidPoll
	}

	uc.record(ctx, actor, ActionPollCreateAttempt, map[string]any{
		"question": question,
	})

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		uc.recordError(ctx, actor, ActionPollCreateError, question, err)
		return CreatePollResult{}, err
	}
	now := uc.now()
	poll := entities.Poll{
		ID:             pollID,
		CreatorID:      actor.UserID,
		Question:       question,
		WeatherContext: strings.TrimSpace(cmd.WeatherContext),
		CreatedAt:      now,
		Options:        make([]entities.Option, 0, len(optionTexts)),
	}
	for i, text := range optionTexts {
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			uc.recordError(ctx, actor, ActionPollCreateError, question, err)
			return CreatePollResult{}, err
		}
		poll.Options = append(poll.Options, entities.Option{
			ID:       optionID,
			PollID:   pollID,
			Text:     text,
			Position: i,
		})
	}

	if err := uc.Polls.CreatePoll(ctx, poll); err != nil {
		uc.recordError(ctx, actor, ActionPollCreateError, question, err)
		return CreatePollResult{}, err
	}

	uc.record(ctx, actor, ActionPollCreateSuccess, map[string]any{
		"question": question,
		"poll_id":  pollID,
	})
	logger.Info("poll created",
		"event", "polling_poll_created",
		"module", "polling/poll-service",
		"layer", "application",
		"poll_id", pollID,
		"creator_id", actor.UserID,
		"option_count", len(poll.Options),
	)
	return CreatePollResult{PollID: pollID}, nil
}

func (uc PollUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

// record is fire-and-forget: a nil recorder is a no-op and Record itself
// never returns an error to the primary operation.
func (uc PollUseCase) record(ctx context.Context, actor ports.Identity, action string, metadata map[string]any) {
	if uc.Audit == nil {
		return
	}
	uc.Audit.Record(ctx, ports.AuditEvent{
		Action:    action,
		ActorID:   actor.UserID,
		ActorName: actor.DisplayName,
		Metadata:  metadata,
	})
}

func (uc PollUseCase) recordError(ctx context.Context, actor ports.Identity, action string, question string, cause error) {
	metadata := map[string]any{
		"error": cause.Error(),
	}
	if question != "" {
		metadata["question"] = question
	}
	uc.record(ctx, actor, action, metadata)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
