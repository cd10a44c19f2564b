package pollservice

import (
	"log/slog"

	httpadapter "skypolls/contexts/polling/poll-service/adapters/http"
	"skypolls/contexts/polling/poll-service/adapters/memory"
	"skypolls/contexts/polling/poll-service/application/commands"
	"skypolls/contexts/polling/poll-service/application/queries"
	"skypolls/contexts/polling/poll-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Polls    ports.PollRepository
	Identity ports.IdentityResolver
	Creators ports.CreatorDirectory
	Audit    ports.AuditRecorder
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	pollUseCase := commands.PollUseCase{
		Polls:    deps.Polls,
		Identity: deps.Identity,
		Audit:    deps.Audit,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	listUseCase := queries.ListPollsUseCase{
		Polls:    deps.Polls,
		Creators: deps.Creators,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:  pollUseCase,
			Lists:  listUseCase,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store; the
// cross-context collaborators still arrive from outside.
func NewInMemoryModule(
	identity ports.IdentityResolver,
	creators ports.CreatorDirectory,
	audit ports.AuditRecorder,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	return NewModule(Dependencies{
		Polls:    store,
		Identity: identity,
		Creators: creators,
		Audit:    audit,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
}
