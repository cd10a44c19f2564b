package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"skypolls/contexts/audit/audit-trail/domain/entities"
)

// fingerprintTimeLayout is ISO-8601 UTC with millisecond precision. The
// stored timestamps feed the hash in this exact form, so the layout must
// never change.
const fingerprintTimeLayout = "2006-01-02T15:04:05.000Z"

// absentActor is how a missing acting-user identifier enters the hash input.
const absentActor = "null"

// Fingerprint computes the tamper-evidence digest for an entry: SHA-256 over
// the pipe-delimited concatenation of action, actor id (or its absence
// marker), canonical metadata JSON, creation timestamp, creator name, update
// timestamp, updater name, and the shared secret. Metadata is serialized
// with encoding/json, whose sorted map keys are the fixed canonical form.
func Fingerprint(entry entities.Entry, secret string) (string, error) {
	metadata, err := canonicalMetadata(entry.Metadata)
	if err != nil {
		return "", err
	}

	actor := strings.TrimSpace(entry.ActorID)
	if actor == "" {
		actor = absentActor
	}

	row := strings.Join([]string{
		entry.Action,
		actor,
		metadata,
		entry.CreatedAt.UTC().Format(fingerprintTimeLayout),
		entry.CreatedBy,
		entry.UpdatedAt.UTC().Format(fingerprintTimeLayout),
		entry.UpdatedBy,
		secret,
	}, "|")

	sum := sha256.Sum256([]byte(row))
	return hex.EncodeToString(sum[:]), nil
}

func canonicalMetadata(metadata map[string]any) (string, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// TruncateToMillis drops sub-millisecond precision so a recomputed
// fingerprint sees the same timestamp bytes the stored one did.
func TruncateToMillis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
