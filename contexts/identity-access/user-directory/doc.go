// Package userdirectory implements the user directory inside the
// identity-access context.
//
// The module owns identity resolution for caller-supplied user identifiers
// and the read-only user roster. User lifecycle (creation, removal) is
// external; this module only looks records up.
package userdirectory
