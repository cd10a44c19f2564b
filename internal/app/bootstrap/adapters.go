package bootstrap

import (
	"context"
	"errors"

	auditapp "skypolls/contexts/audit/audit-trail/application"
	userdirectory "skypolls/contexts/identity-access/user-directory"
	directoryerrors "skypolls/contexts/identity-access/user-directory/domain/errors"
	pollerrors "skypolls/contexts/polling/poll-service/domain/errors"
	pollports "skypolls/contexts/polling/poll-service/ports"
)

// The poll service talks to the other contexts through its own ports; these
// adapters bridge them so neither context imports the other directly.

type directoryIdentityAdapter struct {
	directory userdirectory.Module
}

func (a directoryIdentityAdapter) Resolve(ctx context.Context, rawID string) (pollports.Identity, error) {
	user, err := a.directory.Resolver.Resolve(ctx, rawID)
	if err != nil {
		switch {
		case errors.Is(err, directoryerrors.ErrUnauthenticated):
			return pollports.Identity{}, pollerrors.ErrUnauthenticated
		case errors.Is(err, directoryerrors.ErrUnknownIdentity):
			return pollports.Identity{}, pollerrors.ErrUnknownIdentity
		default:
			return pollports.Identity{}, err
		}
	}
	return pollports.Identity{
		UserID:      user.ID,
		DisplayName: user.Name,
	}, nil
}

type directoryCreatorAdapter struct {
	directory userdirectory.Module
}

func (a directoryCreatorAdapter) GetCreator(ctx context.Context, userID string) (pollports.CreatorProfile, bool, error) {
	user, err := a.directory.Resolver.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, directoryerrors.ErrUnauthenticated) ||
			errors.Is(err, directoryerrors.ErrUnknownIdentity) {
			return pollports.CreatorProfile{}, false, nil
		}
		return pollports.CreatorProfile{}, false, err
	}
	return pollports.CreatorProfile{
		UserID:      user.ID,
		Name:        user.Name,
		AvatarColor: user.AvatarColor,
	}, true, nil
}

type auditRecorderAdapter struct {
	recorder *auditapp.Recorder
}

func (a auditRecorderAdapter) Record(ctx context.Context, event pollports.AuditEvent) {
	a.recorder.Record(ctx, auditapp.RecordInput{
		Action:    event.Action,
		ActorID:   event.ActorID,
		ActorName: event.ActorName,
		Metadata:  event.Metadata,
	})
}

// noopAuditRecorder backs the wiring when the audit trail is disabled.
type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, pollports.AuditEvent) {}
