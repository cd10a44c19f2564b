package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"skypolls/contexts/identity-access/user-directory/domain/entities"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

func NewStore(seed []entities.User) *Store {
	users := make(map[string]entities.User, len(seed))
	for _, user := range seed {
		users[strings.TrimSpace(user.ID)] = user
	}
	return &Store{users: users}
}

// SeedDemoUsers returns the demo roster used by local development wiring.
func SeedDemoUsers() []entities.User {
	names := []struct {
		name  string
		color string
	}{
		{"Ali", "#FF5733"},
		{"Zara", "#33FF57"},
		{"Bilal", "#3357FF"},
		{"Fatima", "#FF33A1"},
		{"Omar", "#A133FF"},
		{"Ayesha", "#FF8C33"},
		{"Usman", "#33FFF5"},
		{"Hina", "#8C33FF"},
		{"Ahmed", "#FF3333"},
	}
	now := time.Now().UTC()
	users := make([]entities.User, 0, len(names))
	for i, item := range names {
		users = append(users, entities.User{
			ID:          strconv.Itoa(i + 1),
			Name:        item.name,
			AvatarColor: item.color,
			CreatedAt:   now,
		})
	}
	return users
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	return user, ok, nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}
