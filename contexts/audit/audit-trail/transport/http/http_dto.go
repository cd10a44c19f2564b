package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecordEventRequest struct {
	Action  string         `json:"action"`
	Details map[string]any `json:"details"`
}

type RecordEventResponse struct {
	Success bool `json:"success"`
}

type VerifyResponse struct {
	CheckedCount int      `json:"checked_count"`
	TamperedIDs  []string `json:"tampered_ids"`
	Intact       bool     `json:"intact"`
}
