package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	audittrail "skypolls/contexts/audit/audit-trail"
	audithttp "skypolls/contexts/audit/audit-trail/transport/http"
	userdirectory "skypolls/contexts/identity-access/user-directory"
	directoryerrors "skypolls/contexts/identity-access/user-directory/domain/errors"
	directoryhttp "skypolls/contexts/identity-access/user-directory/transport/http"
	pollservice "skypolls/contexts/polling/poll-service"
	pollerrors "skypolls/contexts/polling/poll-service/domain/errors"
	pollhttp "skypolls/contexts/polling/poll-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "skypolls/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	directory userdirectory.Module
	polls     pollservice.Module
	audit     audittrail.Module
}

func New(
	directory userdirectory.Module,
	polls pollservice.Module,
	audit audittrail.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		directory: directory,
		polls:     polls,
		audit:     audit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("GET /polls", s.handleListPolls)
	s.mux.HandleFunc("POST /polls", s.handleCreatePoll)
	s.mux.HandleFunc("POST /vote", s.handleCastVote)
	s.mux.HandleFunc("POST /log", s.handleRecordEvent)
	s.mux.HandleFunc("GET /audit/verify", s.handleVerifyAudit)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.directory.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPolls(w http.ResponseWriter, r *http.Request) {
	// The list is public; the header only personalizes the own-vote marker.
	resp, err := s.polls.Handler.ListPollsHandler(r.Context(), r.Header.Get("X-User-Id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), r.Header.Get("X-User-Id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.polls.Handler.CastVoteHandler(r.Context(), r.Header.Get("X-User-Id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req audithttp.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Even a malformed body must not fail the caller; record what we can.
		req = audithttp.RecordEventRequest{}
	}

	// An unknown or absent caller is still allowed to log; the entry is
	// simply attributed to the system.
	actorID := ""
	actorName := ""
	if rawID := strings.TrimSpace(r.Header.Get("X-User-Id")); rawID != "" {
		if user, err := s.directory.Resolver.Resolve(r.Context(), rawID); err == nil {
			actorID = user.ID
			actorName = user.Name
		}
	}

	resp := s.audit.Handler.RecordEventHandler(r.Context(), actorID, actorName, req)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyAudit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.audit.Handler.VerifyHandler(r.Context())
	if err != nil {
		writeAuditError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrUnauthenticated):
		writeDirectoryError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, directoryerrors.ErrUnknownIdentity):
		writeDirectoryError(w, http.StatusForbidden, "unknown_identity", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrUnauthenticated):
		writePollError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, pollerrors.ErrUnknownIdentity):
		writePollError(w, http.StatusForbidden, "unknown_identity", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidPoll):
		writePollError(w, http.StatusBadRequest, "invalid_poll", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidVote):
		writePollError(w, http.StatusBadRequest, "invalid_vote", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrAlreadyVoted):
		writePollError(w, http.StatusConflict, "already_voted", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAuditError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, audithttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
