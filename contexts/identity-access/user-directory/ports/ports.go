package ports

import (
	"context"

	"skypolls/contexts/identity-access/user-directory/domain/entities"
)

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (entities.User, bool, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}
