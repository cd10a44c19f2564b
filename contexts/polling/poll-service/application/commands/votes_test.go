package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainerrors "skypolls/contexts/polling/poll-service/domain/errors"
)

func createTestPoll(t *testing.T, uc PollUseCase) string {
	t.Helper()
	result, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		RawUserID:   "1",
		Question:    "Chai or Coffee?",
		OptionTexts: []string{"Chai", "Coffee"},
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	return result.PollID
}

func TestCastVotePersistsVoteAndAudits(t *testing.T) {
	uc, store, audit := newTestUseCase()
	pollID := createTestPoll(t, uc)

	polls, _ := store.ListPolls(context.Background())
	optionID := polls[0].Options[0].ID

	if err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "2",
		PollID:    pollID,
		OptionID:  optionID,
	}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	votes, err := store.ListVotesByPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected 1 vote, got %d", len(votes))
	}
	if votes[0].UserID != "2" || votes[0].OptionID != optionID {
		t.Fatalf("unexpected vote row: %+v", votes[0])
	}

	actions := audit.actions()
	if actions[len(actions)-1] != ActionVoteCast {
		t.Fatalf("expected final audit action %s, got %v", ActionVoteCast, actions)
	}
}

func TestCastVoteRejectsSecondVoteOnSamePoll(t *testing.T) {
	uc, store, audit := newTestUseCase()
	pollID := createTestPoll(t, uc)

	polls, _ := store.ListPolls(context.Background())
	first := polls[0].Options[0].ID
	second := polls[0].Options[1].ID

	if err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "2",
		PollID:    pollID,
		OptionID:  first,
	}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// A different option does not help; uniqueness is per (poll, user).
	err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "2",
		PollID:    pollID,
		OptionID:  second,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	votes, _ := store.ListVotesByPoll(context.Background(), pollID)
	if len(votes) != 1 {
		t.Fatalf("expected the first vote to stand alone, got %d votes", len(votes))
	}
	if votes[0].OptionID != first {
		t.Fatalf("expected the original option to survive, got %q", votes[0].OptionID)
	}

	actions := audit.actions()
	if actions[len(actions)-1] != ActionVoteCastError {
		t.Fatalf("expected final audit action %s, got %v", ActionVoteCastError, actions)
	}
}

func TestCastVoteAllowsSameUserAcrossPolls(t *testing.T) {
	uc, store, _ := newTestUseCase()
	firstPoll := createTestPoll(t, uc)

	result, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		RawUserID:   "1",
		Question:    "Window or aisle?",
		OptionTexts: []string{"Window", "Aisle"},
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	secondPoll := result.PollID

	polls, _ := store.ListPolls(context.Background())
	optionByPoll := make(map[string]string, len(polls))
	for _, poll := range polls {
		optionByPoll[poll.ID] = poll.Options[0].ID
	}

	for _, pollID := range []string{firstPoll, secondPoll} {
		if err := uc.CastVote(context.Background(), CastVoteCommand{
			RawUserID: "2",
			PollID:    pollID,
			OptionID:  optionByPoll[pollID],
		}); err != nil {
			t.Fatalf("vote on poll %s failed: %v", pollID, err)
		}
	}
}

func TestCastVoteRejectsUnknownPoll(t *testing.T) {
	uc, store, _ := newTestUseCase()

	err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "2",
		PollID:    "poll-that-never-existed",
		OptionID:  "option-that-never-existed",
	})
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}

	votes, _ := store.ListVotesByPoll(context.Background(), "poll-that-never-existed")
	if len(votes) != 0 {
		t.Fatalf("expected no vote rows for an unknown poll, got %d", len(votes))
	}
}

func TestCastVoteRejectsOptionFromAnotherPoll(t *testing.T) {
	uc, store, _ := newTestUseCase()
	firstPoll := createTestPoll(t, uc)

	result, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		RawUserID:   "1",
		Question:    "Window or aisle?",
		OptionTexts: []string{"Window", "Aisle"},
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}

	polls, _ := store.ListPolls(context.Background())
	var foreignOption string
	for _, poll := range polls {
		if poll.ID == result.PollID {
			foreignOption = poll.Options[0].ID
		}
	}

	err = uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "2",
		PollID:    firstPoll,
		OptionID:  foreignOption,
	})
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound for a foreign option, got %v", err)
	}
}

func TestCastVoteConcurrentAttemptsKeepOneRow(t *testing.T) {
	uc, store, _ := newTestUseCase()
	pollID := createTestPoll(t, uc)

	polls, _ := store.ListPolls(context.Background())
	optionID := polls[0].Options[0].ID

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- uc.CastVote(context.Background(), CastVoteCommand{
				RawUserID: "2",
				PollID:    pollID,
				OptionID:  optionID,
			})
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	rejected := 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != attempts-1 {
		t.Fatalf("expected 1 success and %d rejections, got %d and %d", attempts-1, succeeded, rejected)
	}

	votes, _ := store.ListVotesByPoll(context.Background(), pollID)
	if len(votes) != 1 {
		t.Fatalf("expected exactly 1 vote row, got %d", len(votes))
	}
}

func TestCastVoteValidatesIdentifiers(t *testing.T) {
	uc, _, _ := newTestUseCase()

	err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "1",
		PollID:    "  ",
		OptionID:  "o-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidVote) {
		t.Fatalf("expected ErrInvalidVote for blank poll id, got %v", err)
	}

	err = uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "1",
		PollID:    "p-1",
		OptionID:  "",
	})
	if !errors.Is(err, domainerrors.ErrInvalidVote) {
		t.Fatalf("expected ErrInvalidVote for blank option id, got %v", err)
	}
}

func TestCastVoteRequiresKnownIdentity(t *testing.T) {
	uc, _, _ := newTestUseCase()

	err := uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "",
		PollID:    "p-1",
		OptionID:  "o-1",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	err = uc.CastVote(context.Background(), CastVoteCommand{
		RawUserID: "999",
		PollID:    "p-1",
		OptionID:  "o-1",
	})
	if !errors.Is(err, domainerrors.ErrUnknownIdentity) {
		t.Fatalf("expected ErrUnknownIdentity, got %v", err)
	}
}
