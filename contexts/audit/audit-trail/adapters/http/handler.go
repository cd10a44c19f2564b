package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	application "skypolls/contexts/audit/audit-trail/application"
	httptransport "skypolls/contexts/audit/audit-trail/transport/http"
)

const fallbackAction = "unknown_action"

type Handler struct {
	Recorder *application.Recorder
	Verifier *application.Verifier
	Logger   *slog.Logger
}

// RecordEventHandler accepts any caller-supplied event and always reports
// success. Auditing must never fail the operation that triggered it, and the
// entry itself is written asynchronously.
func (h Handler) RecordEventHandler(
	ctx context.Context,
	actorID string,
	actorName string,
	req httptransport.RecordEventRequest,
) httptransport.RecordEventResponse {
	action := strings.TrimSpace(req.Action)
	if action == "" {
		action = fallbackAction
	}
	h.Recorder.Record(ctx, application.RecordInput{
		Action:    action,
		ActorID:   actorID,
		ActorName: actorName,
		Metadata:  req.Details,
	})
	return httptransport.RecordEventResponse{Success: true}
}

func (h Handler) VerifyHandler(ctx context.Context) (httptransport.VerifyResponse, error) {
	report, err := h.Verifier.Sweep(ctx)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	tampered := report.Tampered
	if tampered == nil {
		tampered = []string{}
	}
	return httptransport.VerifyResponse{
		CheckedCount: report.Checked,
		TamperedIDs:  tampered,
		Intact:       len(tampered) == 0,
	}, nil
}
