package application

import (
	"context"
	"log/slog"
	"strings"

	"skypolls/contexts/identity-access/user-directory/domain/entities"
	domainerrors "skypolls/contexts/identity-access/user-directory/domain/errors"
	"skypolls/contexts/identity-access/user-directory/ports"
)

// Resolver maps an opaque caller-supplied identifier to a known user record.
// The resolved display name travels with the identity so downstream audit
// attribution needs no second lookup.
type Resolver struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (r Resolver) Resolve(ctx context.Context, rawID string) (entities.User, error) {
	userID := strings.TrimSpace(rawID)
	if userID == "" {
		return entities.User{}, domainerrors.ErrUnauthenticated
	}

	user, found, err := r.Users.GetUser(ctx, userID)
	if err != nil {
		r.logger().Error("identity lookup failed",
			"event", "directory_resolve_failed",
			"module", "identity-access/user-directory",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return entities.User{}, err
	}
	if !found {
		r.logger().Warn("identity not recognized",
			"event", "directory_identity_unknown",
			"module", "identity-access/user-directory",
			"layer", "application",
			"user_id", userID,
		)
		return entities.User{}, domainerrors.ErrUnknownIdentity
	}
	return user, nil
}

func (r Resolver) ListUsers(ctx context.Context) ([]entities.User, error) {
	return r.Users.ListUsers(ctx)
}

func (r Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
