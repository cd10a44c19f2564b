// Package pollservice implements poll voting inside the polling context.
//
// The module owns poll/option/vote state and its two defining guarantees:
// a poll is created atomically with at least two options or not at all, and
// at most one vote exists per (poll, user) pair, enforced by the storage
// layer's uniqueness constraint rather than application locking. Result
// aggregation (counts, percentages, the requester's own vote) lives in the
// query side. Every mutating flow reports its outcome to the audit trail
// through a fire-and-forget port.
package pollservice
