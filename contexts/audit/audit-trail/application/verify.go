package application

import (
	"context"
	"log/slog"

	"skypolls/contexts/audit/audit-trail/domain/entities"
	"skypolls/contexts/audit/audit-trail/ports"
)

// SweepReport summarizes one verification pass over the stored entries.
type SweepReport struct {
	Checked  int
	Tampered []string
}

// Verifier recomputes fingerprints against the stored rows. A mismatch means
// the row changed after it was written or the secret differs from the one the
// writer used.
type Verifier struct {
	Entries ports.EntryRepository
	Secret  string
	Logger  *slog.Logger
}

// VerifyEntry reports whether the stored fingerprint still matches the
// entry's content.
func (v *Verifier) VerifyEntry(entry entities.Entry) (bool, error) {
	want, err := Fingerprint(entry, v.Secret)
	if err != nil {
		return false, err
	}
	return want == entry.Fingerprint, nil
}

// Sweep checks every stored entry and returns the IDs whose fingerprints no
// longer match. Entries that cannot be recomputed count as tampered.
func (v *Verifier) Sweep(ctx context.Context) (SweepReport, error) {
	entries, err := v.Entries.ListEntries(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Checked: len(entries)}
	for _, entry := range entries {
		ok, err := v.VerifyEntry(entry)
		if err == nil && ok {
			continue
		}
		report.Tampered = append(report.Tampered, entry.ID)
		v.logger().Warn("audit entry fingerprint mismatch",
			"event", "audit_entry_tampered",
			"module", "audit/audit-trail",
			"layer", "application",
			"entry_id", entry.ID,
			"action", entry.Action,
		)
	}
	return report, nil
}

func (v *Verifier) logger() *slog.Logger {
	if v.Logger == nil {
		return slog.Default()
	}
	return v.Logger
}
