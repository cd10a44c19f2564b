package entities

import "time"

// Poll is immutable once created. Options hold their insertion order, which
// is display-significant.
type Poll struct {
	ID             string
	CreatorID      string
	Question       string
	WeatherContext string
	CreatedAt      time.Time
	Options        []Option
}

type Option struct {
	ID       string
	PollID   string
	Text     string
	Position int
}

// Vote records one user's choice on one poll. At most one vote exists per
// (poll, user) pair.
type Vote struct {
	ID        string
	PollID    string
	OptionID  string
	UserID    string
	CreatedAt time.Time
}

// OptionTally is the aggregated result for a single option.
type OptionTally struct {
	OptionID   string
	Text       string
	Votes      int
	Percentage float64
}

// PollResults is a poll with derived counts and the requesting user's own
// vote, shaped for the list endpoint.
type PollResults struct {
	Poll          Poll
	CreatorName   string
	CreatorAvatar string
	TotalVotes    int
	Tallies       []OptionTally
	VotedOptionID string
}
