package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	WeatherContext string   `json:"weather_context"`
}

type CreatePollResponse struct {
	Success bool   `json:"success"`
	PollID  string `json:"pollId"`
}

type CastVoteRequest struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

type CastVoteResponse struct {
	Success bool `json:"success"`
}

type PollOptionResponse struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type PollResponse struct {
	ID                string               `json:"id"`
	CreatorID         string               `json:"creator_id"`
	CreatorName       string               `json:"creator_name"`
	CreatorAvatar     string               `json:"creator_avatar"`
	Question          string               `json:"question"`
	WeatherContext    string               `json:"weather_context"`
	CreatedAt         time.Time            `json:"created_at"`
	Options           []PollOptionResponse `json:"options"`
	TotalVotes        int                  `json:"total_votes"`
	UserVotedOptionID *string              `json:"user_voted_option_id"`
}
