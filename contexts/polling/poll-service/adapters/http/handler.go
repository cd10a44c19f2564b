package httpadapter

import (
	"context"
	"log/slog"

	"skypolls/contexts/polling/poll-service/application/commands"
	"skypolls/contexts/polling/poll-service/application/queries"
	"skypolls/contexts/polling/poll-service/domain/entities"
	httptransport "skypolls/contexts/polling/poll-service/transport/http"
)

type Handler struct {
	Polls  commands.PollUseCase
	Lists  queries.ListPollsUseCase
	Logger *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	rawUserID string,
	req httptransport.CreatePollRequest,
) (httptransport.CreatePollResponse, error) {
	result, err := h.Polls.CreatePoll(ctx, commands.CreatePollCommand{
		RawUserID:      rawUserID,
		Question:       req.Question,
		OptionTexts:    req.Options,
		WeatherContext: req.WeatherContext,
	})
	if err != nil {
		return httptransport.CreatePollResponse{}, err
	}
	return httptransport.CreatePollResponse{
		Success: true,
		PollID:  result.PollID,
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	rawUserID string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	err := h.Polls.CastVote(ctx, commands.CastVoteCommand{
		RawUserID: rawUserID,
		PollID:    req.PollID,
		OptionID:  req.OptionID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{Success: true}, nil
}

func (h Handler) ListPollsHandler(ctx context.Context, rawUserID string) ([]httptransport.PollResponse, error) {
	results, err := h.Lists.ListPolls(ctx, rawUserID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.PollResponse, 0, len(results))
	for _, result := range results {
		items = append(items, mapPollResults(result))
	}
	return items, nil
}

func mapPollResults(result entities.PollResults) httptransport.PollResponse {
	options := make([]httptransport.PollOptionResponse, 0, len(result.Tallies))
	for _, tally := range result.Tallies {
		options = append(options, httptransport.PollOptionResponse{
			ID:         tally.OptionID,
			Text:       tally.Text,
			VoteCount:  tally.Votes,
			Percentage: tally.Percentage,
		})
	}
	resp := httptransport.PollResponse{
		ID:             result.Poll.ID,
		CreatorID:      result.Poll.CreatorID,
		CreatorName:    result.CreatorName,
		CreatorAvatar:  result.CreatorAvatar,
		Question:       result.Poll.Question,
		WeatherContext: result.Poll.WeatherContext,
		CreatedAt:      result.Poll.CreatedAt,
		Options:        options,
		TotalVotes:     result.TotalVotes,
	}
	if result.VotedOptionID != "" {
		voted := result.VotedOptionID
		resp.UserVotedOptionID = &voted
	}
	return resp
}
