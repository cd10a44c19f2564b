package errors

import "errors"

var (
	ErrUnauthenticated = errors.New("no user identifier supplied")
	ErrUnknownIdentity = errors.New("user identifier is not recognized")
	ErrInvalidPoll     = errors.New("poll needs a question and at least two options")
	ErrInvalidVote     = errors.New("vote needs a poll id and an option id")
	ErrAlreadyVoted    = errors.New("user already voted on this poll")
	ErrPollNotFound    = errors.New("poll not found")
)
