package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	audittrail "skypolls/contexts/audit/audit-trail"
	auditapp "skypolls/contexts/audit/audit-trail/application"
	audithttp "skypolls/contexts/audit/audit-trail/transport/http"
	userdirectory "skypolls/contexts/identity-access/user-directory"
	directorymemory "skypolls/contexts/identity-access/user-directory/adapters/memory"
	directoryerrors "skypolls/contexts/identity-access/user-directory/domain/errors"
	pollservice "skypolls/contexts/polling/poll-service"
	pollerrors "skypolls/contexts/polling/poll-service/domain/errors"
	pollports "skypolls/contexts/polling/poll-service/ports"
	pollhttp "skypolls/contexts/polling/poll-service/transport/http"
)

const testAuditSecret = "super_secret_tamper_proof_salt_2025"

type testIdentityAdapter struct {
	directory userdirectory.Module
}

func (a testIdentityAdapter) Resolve(ctx context.Context, rawID string) (pollports.Identity, error) {
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
	return pollports.Identity{UserID: user.ID, DisplayName: user.Name}, nil
}

type testCreatorAdapter struct {
	directory userdirectory.Module
}

func (a testCreatorAdapter) GetCreator(ctx context.Context, userID string) (pollports.CreatorProfile, bool, error) {
	user, err := a.directory.Resolver.Resolve(ctx, userID)
	if err != nil {
		return pollports.CreatorProfile{}, false, nil
	}
	return pollports.CreatorProfile{
		UserID:      user.ID,
		Name:        user.Name,
		AvatarColor: user.AvatarColor,
	}, true, nil
}

type testAuditAdapter struct {
	recorder *auditapp.Recorder
}

func (a testAuditAdapter) Record(ctx context.Context, event pollports.AuditEvent) {
	a.recorder.Record(ctx, auditapp.RecordInput{
		Action:    event.Action,
		ActorID:   event.ActorID,
		ActorName: event.ActorName,
		Metadata:  event.Metadata,
	})
}

func newTestServer(t *testing.T) (*httptest.Server, audittrail.Module) {
	t.Helper()

	directoryModule := userdirectory.NewInMemoryModule(directorymemory.SeedDemoUsers(), nil)
	auditModule := audittrail.NewInMemoryModule(testAuditSecret, nil)
	pollModule := pollservice.NewInMemoryModule(
		testIdentityAdapter{directory: directoryModule},
		testCreatorAdapter{directory: directoryModule},
		testAuditAdapter{recorder: auditModule.Recorder},
		nil,
	)

	server := New(directoryModule, pollModule, auditModule, nil, ":0")
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(auditModule.Close)
	return ts, auditModule
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, userID string, payload any) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request failed: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &body)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return out
}

func TestListUsersReturnsSeedRoster(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/users", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	users := decodeBody[[]map[string]any](t, resp)
	if len(users) != 9 {
		t.Fatalf("expected 9 seeded users, got %d", len(users))
	}
}

func TestCreatePollRequiresIdentityHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	payload := pollhttp.CreatePollRequest{
		Question: "Chai or Coffee?",
		Options:  []string{"Chai", "Coffee"},
	}

	resp := doJSON(t, ts, http.MethodPost, "/polls", "", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", resp.StatusCode)
	}

	resp = doJSON(t, ts, http.MethodPost, "/polls", "999", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown user, got %d", resp.StatusCode)
	}
}

func TestCreatePollRejectsInvalidPayload(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodPost, "/polls", "1", pollhttp.CreatePollRequest{
		Question: "",
		Options:  []string{"Chai", "Coffee"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank question, got %d", resp.StatusCode)
	}

	resp = doJSON(t, ts, http.MethodPost, "/polls", "1", pollhttp.CreatePollRequest{
		Question: "Lonely?",
		Options:  []string{"Only"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for one option, got %d", resp.StatusCode)
	}
}

func TestPollVotingFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	created := decodeBody[pollhttp.CreatePollResponse](t, doJSON(t, ts, http.MethodPost, "/polls", "1", pollhttp.CreatePollRequest{
		Question:       "Chai or Coffee?",
		Options:        []string{"Chai", "Coffee"},
		WeatherContext: "Sunny, 24C",
	}))
	if !created.Success || created.PollID == "" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	polls := decodeBody[[]pollhttp.PollResponse](t, doJSON(t, ts, http.MethodGet, "/polls", "2", nil))
	if len(polls) != 1 {
		t.Fatalf("expected 1 poll, got %d", len(polls))
	}
	poll := polls[0]
	if poll.CreatorName != "Ali" {
		t.Fatalf("expected creator Ali, got %q", poll.CreatorName)
	}
	if poll.TotalVotes != 0 || poll.UserVotedOptionID != nil {
		t.Fatalf("expected a fresh poll, got %+v", poll)
	}
	for _, option := range poll.Options {
		if option.Percentage != 0 {
			t.Fatalf("expected 0%% on a voteless poll, got %+v", option)
		}
	}

	voteResp := doJSON(t, ts, http.MethodPost, "/vote", "2", pollhttp.CastVoteRequest{
		PollID:   poll.ID,
		OptionID: poll.Options[0].ID,
	})
	voteResp.Body.Close()
	if voteResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for first vote, got %d", voteResp.StatusCode)
	}

	dupResp := doJSON(t, ts, http.MethodPost, "/vote", "2", pollhttp.CastVoteRequest{
		PollID:   poll.ID,
		OptionID: poll.Options[1].ID,
	})
	dupResp.Body.Close()
	if dupResp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate vote, got %d", dupResp.StatusCode)
	}

	otherResp := doJSON(t, ts, http.MethodPost, "/vote", "3", pollhttp.CastVoteRequest{
		PollID:   poll.ID,
		OptionID: poll.Options[1].ID,
	})
	otherResp.Body.Close()
	if otherResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for another user's vote, got %d", otherResp.StatusCode)
	}

	polls = decodeBody[[]pollhttp.PollResponse](t, doJSON(t, ts, http.MethodGet, "/polls", "2", nil))
	poll = polls[0]
	if poll.TotalVotes != 2 {
		t.Fatalf("expected 2 total votes, got %d", poll.TotalVotes)
	}
	if poll.Options[0].Percentage != 50 || poll.Options[1].Percentage != 50 {
		t.Fatalf("expected a 50/50 split, got %+v", poll.Options)
	}
	if poll.UserVotedOptionID == nil || *poll.UserVotedOptionID != poll.Options[0].ID {
		t.Fatalf("expected own vote on %q, got %+v", poll.Options[0].ID, poll.UserVotedOptionID)
	}
}

func TestRecordEventAlwaysSucceeds(t *testing.T) {
	ts, auditModule := newTestServer(t)

	resp := decodeBody[audithttp.RecordEventResponse](t, doJSON(t, ts, http.MethodPost, "/log", "1", audithttp.RecordEventRequest{
		Action:  "page_view",
		Details: map[string]any{"page": "dashboard"},
	}))
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}

	// Unknown caller and missing action both degrade, never fail.
	resp = decodeBody[audithttp.RecordEventResponse](t, doJSON(t, ts, http.MethodPost, "/log", "999", audithttp.RecordEventRequest{}))
	if !resp.Success {
		t.Fatalf("expected success for anonymous entry, got %+v", resp)
	}

	auditModule.Recorder.Close()
	entries, err := auditModule.Store.ListEntries(context.Background())
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].CreatedBy != "Ali" {
		t.Fatalf("expected attribution to Ali, got %q", entries[0].CreatedBy)
	}
	if entries[1].Action != "unknown_action" || entries[1].CreatedBy != "SYSTEM" {
		t.Fatalf("expected anonymous fallback entry, got %+v", entries[1])
	}
}

func TestAuditVerifyEndpoint(t *testing.T) {
	ts, auditModule := newTestServer(t)

	created := decodeBody[pollhttp.CreatePollResponse](t, doJSON(t, ts, http.MethodPost, "/polls", "1", pollhttp.CreatePollRequest{
		Question: "Window or aisle?",
		Options:  []string{"Window", "Aisle"},
	}))
	if !created.Success {
		t.Fatalf("create poll failed: %+v", created)
	}
	auditModule.Recorder.Close()

	verify := decodeBody[audithttp.VerifyResponse](t, doJSON(t, ts, http.MethodGet, "/audit/verify", "", nil))
	if !verify.Intact {
		t.Fatalf("expected an intact log, got %+v", verify)
	}
	if verify.CheckedCount != 2 {
		t.Fatalf("expected attempt and success entries, got %d", verify.CheckedCount)
	}
}
