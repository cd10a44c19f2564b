package audittrail

import (
	"log/slog"

	httpadapter "skypolls/contexts/audit/audit-trail/adapters/http"
	"skypolls/contexts/audit/audit-trail/adapters/memory"
	"skypolls/contexts/audit/audit-trail/application"
	"skypolls/contexts/audit/audit-trail/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Recorder *application.Recorder
	Verifier *application.Verifier
	Store    *memory.Store
}

type Dependencies struct {
	Entries   ports.EntryRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Secret    string
	QueueSize int
	Logger    *slog.Logger
}

// NewModule starts the background recorder; callers own the module lifecycle
// and must Close it to flush pending entries.
func NewModule(deps Dependencies) Module {
	recorder := application.NewRecorder(
		deps.Entries,
		deps.Clock,
		deps.IDGen,
		deps.Secret,
		deps.QueueSize,
		deps.Logger,
	)
	verifier := &application.Verifier{
		Entries: deps.Entries,
		Secret:  deps.Secret,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Recorder: recorder,
			Verifier: verifier,
			Logger:   deps.Logger,
		},
		Recorder: recorder,
		Verifier: verifier,
	}
}

func NewInMemoryModule(secret string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Entries: store,
		Clock:   store,
		IDGen:   store,
		Secret:  secret,
		Logger:  logger,
	})
	module.Store = store
	return module
}

func (m Module) Close() {
	if m.Recorder != nil {
		m.Recorder.Close()
	}
}
