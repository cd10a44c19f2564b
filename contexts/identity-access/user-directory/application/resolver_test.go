package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"skypolls/contexts/identity-access/user-directory/adapters/memory"
	"skypolls/contexts/identity-access/user-directory/domain/entities"
	domainerrors "skypolls/contexts/identity-access/user-directory/domain/errors"
)

func TestResolveKnownUser(t *testing.T) {
	store := memory.NewStore([]entities.User{
		{ID: "7", Name: "Usman", AvatarColor: "#33FFF5", CreatedAt: time.Now().UTC()},
	})
	resolver := Resolver{Users: store}

	user, err := resolver.Resolve(context.Background(), "7")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if user.Name != "Usman" {
		t.Fatalf("unexpected display name %q", user.Name)
	}
}

func TestResolveMissingIdentifier(t *testing.T) {
	resolver := Resolver{Users: memory.NewStore(nil)}

	_, err := resolver.Resolve(context.Background(), "   ")
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestResolveUnknownIdentifier(t *testing.T) {
	resolver := Resolver{Users: memory.NewStore(memory.SeedDemoUsers())}

	_, err := resolver.Resolve(context.Background(), "no-such-user")
	if !errors.Is(err, domainerrors.ErrUnknownIdentity) {
		t.Fatalf("expected unknown identity, got %v", err)
	}
}

func TestListUsersReturnsSeedRoster(t *testing.T) {
	resolver := Resolver{Users: memory.NewStore(memory.SeedDemoUsers())}

	users, err := resolver.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 9 {
		t.Fatalf("expected 9 seeded users, got %d", len(users))
	}
}
