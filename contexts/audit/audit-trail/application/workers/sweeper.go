package workers

import (
	"context"
	"log/slog"

	application "skypolls/contexts/audit/audit-trail/application"
)

// IntegritySweeper periodically re-verifies every stored audit entry.
type IntegritySweeper struct {
	Verifier *application.Verifier
	Logger   *slog.Logger
}

// RunOnce performs a single verification pass. Tampered rows are reported but
// never repaired; the log is evidence, not state to fix.
func (s IntegritySweeper) RunOnce(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	report, err := s.Verifier.Sweep(ctx)
	if err != nil {
		logger.Error("audit integrity sweep failed",
			"event", "audit_sweep_failed",
			"module", "audit/audit-trail",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	if len(report.Tampered) > 0 {
		logger.Warn("audit integrity sweep found tampered entries",
			"event", "audit_sweep_tampered",
			"module", "audit/audit-trail",
			"layer", "worker",
			"checked_count", report.Checked,
			"tampered_count", len(report.Tampered),
			"tampered_ids", report.Tampered,
		)
		return nil
	}

	logger.Info("audit integrity sweep completed",
		"event", "audit_sweep_completed",
		"module", "audit/audit-trail",
		"layer", "worker",
		"checked_count", report.Checked,
	)
	return nil
}
