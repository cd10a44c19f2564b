// Package audittrail implements the tamper-evident audit log inside the
// audit context.
//
// Every security-relevant action becomes one append-only entry carrying a
// SHA-256 fingerprint over its own fields plus a server-held secret. Writing
// is fail-open: the recorder never blocks or fails the operation it
// describes, so audit coverage may have gaps but business flows never stall
// on logging. The fingerprint protects each row in isolation; it does not
// chain to the previous entry, so wholesale row deletion or reordering is
// not detectable by verification.
package audittrail
