package queries

import (
	"context"
	"strings"

	"skypolls/contexts/polling/poll-service/domain/entities"
	"skypolls/contexts/polling/poll-service/ports"
)

// ListPollsUseCase derives per-option counts, percentages, and the
// requesting user's own vote from raw rows. The load is one query per poll;
// tallying itself is a pure function so a grouped-query strategy can replace
// the loading side without changing the contract.
type ListPollsUseCase struct {
	Polls    ports.PollRepository
	Creators ports.CreatorDirectory
}

// ListPolls accepts the raw requesting-user identifier; it is only matched
// against vote rows, so an unknown or absent identifier simply yields no
// own-vote marker.
func (uc ListPollsUseCase) ListPolls(ctx context.Context, requestingUserID string) ([]entities.PollResults, error) {
	polls, err := uc.Polls.ListPolls(ctx)
	if err != nil {
		return nil, err
	}
	requestingUserID = strings.TrimSpace(requestingUserID)

	items := make([]entities.PollResults, 0, len(polls))
	for _, poll := range polls {
		votes, err := uc.Polls.ListVotesByPoll(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		results := Tally(poll, votes, requestingUserID)
		if uc.Creators != nil {
			if creator, found, err := uc.Creators.GetCreator(ctx, poll.CreatorID); err == nil && found {
				results.CreatorName = creator.Name
				results.CreatorAvatar = creator.AvatarColor
			}
		}
		items = append(items, results)
	}
	return items, nil
}

// Tally aggregates vote rows for one poll. Percentages are count/total*100,
// exactly 0 for every option when the poll has no votes.
func Tally(poll entities.Poll, votes []entities.Vote, requestingUserID string) entities.PollResults {
	counts := make(map[string]int, len(poll.Options))
	votedOptionID := ""
	for _, vote := range votes {
		counts[vote.OptionID]++
		if requestingUserID != "" && vote.UserID == requestingUserID {
			votedOptionID = vote.OptionID
		}
	}

	total := 0
	for _, option := range poll.Options {
		total += counts[option.ID]
	}

	tallies := make([]entities.OptionTally, 0, len(poll.Options))
	for _, option := range poll.Options {
		tally := entities.OptionTally{
			OptionID: option.ID,
			Text:     option.Text,
			Votes:    counts[option.ID],
		}
		if total > 0 {
			tally.Percentage = float64(tally.Votes) / float64(total) * 100
		}
		tallies = append(tallies, tally)
	}

	return entities.PollResults{
		Poll:          poll,
		TotalVotes:    total,
		Tallies:       tallies,
		VotedOptionID: votedOptionID,
	}
}
