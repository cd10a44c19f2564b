package commands

import (
	"context"
	"errors"
	"strings"

	"skypolls/contexts/polling/poll-service/domain/entities"
	domainerrors "skypolls/contexts/polling/poll-service/domain/errors"
	"skypolls/contexts/polling/poll-service/ports"
)

type CastVoteCommand struct {
	RawUserID string
	PollID    string
	OptionID  string
}

// CastVote inserts a single vote row. Concurrent attempts for the same
// (poll, user) pair race freely; the storage constraint lets at most one
// insert through and the loser surfaces as ErrAlreadyVoted.
func (uc PollUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) error {
	logger := resolveLogger(uc.Logger)

	actor, err := uc.Identity.Resolve(ctx, cmd.RawUserID)
	if err != nil {
		return err
	}

	pollID := strings.TrimSpace(cmd.PollID)
	optionID := strings.TrimSpace(cmd.OptionID)
	if pollID == "" || optionID == "" {
		return domainerrors.ErrInvalidVote
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		uc.recordVoteError(ctx, actor, pollID, optionID, err)
		return err
	}
	vote := entities.Vote{
		ID:        voteID,
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    actor.UserID,
		CreatedAt: uc.now(),
	}

	if err := uc.Polls.CastVote(ctx, vote); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			// Expected user-facing condition, not an operator alarm.
			logger.Info("duplicate vote rejected",
				"event", "polling_vote_duplicate",
				"module", "polling/poll-service",
				"layer", "application",
				"poll_id", pollID,
				"user_id", actor.UserID,
			)
		}
		uc.recordVoteError(ctx, actor, pollID, optionID, err)
		return err
	}

	uc.record(ctx, actor, ActionVoteCast, map[string]any{
		"poll_id":   pollID,
		"option_id": optionID,
	})
	logger.Info("vote cast",
		"event", "polling_vote_cast",
		"module", "polling/poll-service",
		"layer", "application",
		"poll_id", pollID,
		"option_id", optionID,
		"user_id", actor.UserID,
	)
	return nil
}

func (uc PollUseCase) recordVoteError(ctx context.Context, actor ports.Identity, pollID string, optionID string, cause error) {
	uc.record(ctx, actor, ActionVoteCastError, map[string]any{
		"poll_id":   pollID,
		"option_id": optionID,
		"error":     cause.Error(),
	})
}
