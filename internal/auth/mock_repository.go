package auth

import (
	"sync"
)

type mockRepository struct {
	users  map[string]*User
	nextID uint
	mu     sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  make(map[string]*User),
		nextID: 1,
	}
}

func (r *mockRepository) CreateUser(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrUserExists
	}

	user.ID = r.nextID
	r.nextID++

	// Clone to prevent external modifications
	stored := *user
	if user.LastKnownAddr != nil {
		addr := *user.LastKnownAddr
		stored.LastKnownAddr = &addr
	}
	r.users[user.Email] = &stored
	return nil
}

func (r *mockRepository) GetUserByEmail(email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[normalizeEmail(email)]
	if !exists {
		return nil, ErrUserNotFound
	}
	clone := *user
	if user.LastKnownAddr != nil {
		addr := *user.LastKnownAddr
		clone.LastKnownAddr = &addr
	}
	return &clone, nil
}

func (r *mockRepository) GetUserByID(id uint) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *mockRepository) RecordAddress(userID uint, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == userID {
			if u.LastKnownAddr == nil {
				u.LastKnownAddr = &address
			}
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *mockRepository) UpdateAddress(userID uint, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == userID {
			u.LastKnownAddr = &address
			return nil
		}
	}
	return ErrUserNotFound
}
