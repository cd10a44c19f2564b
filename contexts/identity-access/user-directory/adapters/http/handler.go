package httpadapter

import (
	"context"
	"log/slog"

	"skypolls/contexts/identity-access/user-directory/application"
	httptransport "skypolls/contexts/identity-access/user-directory/transport/http"
)

type Handler struct {
	Directory application.Resolver
	Logger    *slog.Logger
}

func (h Handler) ListUsersHandler(ctx context.Context) ([]httptransport.UserResponse, error) {
	users, err := h.Directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, httptransport.UserResponse{
			ID:          user.ID,
			Name:        user.Name,
			AvatarColor: user.AvatarColor,
		})
	}
	return items, nil
}
