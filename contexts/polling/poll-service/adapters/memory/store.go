package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"skypolls/contexts/polling/poll-service/domain/entities"
	domainerrors "skypolls/contexts/polling/poll-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory poll repository used by tests and local wiring.
// It enforces the same (poll, user) vote uniqueness the Postgres schema
// does, so both adapters agree on ErrAlreadyVoted semantics.
type Store struct {
	mu    sync.RWMutex
	polls map[string]entities.Poll
	votes map[string]entities.Vote
}

func NewStore() *Store {
	return &Store{
		polls: make(map[string]entities.Poll),
		votes: make(map[string]entities.Vote),
	}
}

func (s *Store) CreatePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := make([]entities.Option, len(poll.Options))
	copy(options, poll.Options)
	poll.Options = options
	s.polls[poll.ID] = poll
	return nil
}

func (s *Store) CastVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirror the Postgres foreign keys: a vote row must reference an
	// existing poll and one of its options.
	poll, exists := s.polls[strings.TrimSpace(vote.PollID)]
	if !exists {
		return domainerrors.ErrPollNotFound
	}
	optionKnown := false
	for _, option := range poll.Options {
		if option.ID == vote.OptionID {
			optionKnown = true
			break
		}
	}
	if !optionKnown {
		return domainerrors.ErrPollNotFound
	}

	key := voteKey(vote.PollID, vote.UserID)
	if _, exists := s.votes[key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	s.votes[key] = vote
	return nil
}

func (s *Store) ListPolls(_ context.Context) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		items = append(items, poll)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListVotesByPoll(_ context.Context, pollID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pollID = strings.TrimSpace(pollID)
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			items = append(items, vote)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func voteKey(pollID string, userID string) string {
	return strings.TrimSpace(pollID) + "|" + strings.TrimSpace(userID)
}
