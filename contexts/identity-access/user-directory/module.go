package userdirectory

import (
	"log/slog"

	httpadapter "skypolls/contexts/identity-access/user-directory/adapters/http"
	"skypolls/contexts/identity-access/user-directory/adapters/memory"
	"skypolls/contexts/identity-access/user-directory/application"
	"skypolls/contexts/identity-access/user-directory/domain/entities"
	"skypolls/contexts/identity-access/user-directory/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Resolver application.Resolver
}

type Dependencies struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	resolver := application.Resolver{
		Users:  deps.Users,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Directory: resolver,
			Logger:    deps.Logger,
		},
		Resolver: resolver,
	}
}

func NewInMemoryModule(seed []entities.User, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Users:  memory.NewStore(seed),
		Logger: logger,
	})
}
