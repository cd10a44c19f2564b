package commands

// Audit action tags emitted by the write paths. The set is fixed so the
// trail can be filtered and verified by tag.
const (
	ActionPollCreateAttempt = "poll_create_attempt"
	ActionPollCreateSuccess = "poll_create_success"
	ActionPollCreateError   = "poll_create_error"
	ActionVoteCast          = "vote_cast"
	ActionVoteCastError     = "vote_cast_error"
)
