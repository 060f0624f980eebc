package userrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/astromaster/internal/domain/auth"
)

// MemoryRepository provides an in-memory user store for tests/dev.
type MemoryRepository struct {
	mu            sync.RWMutex
	users         map[string]auth.User
	usernameIndex map[string]string
	identities    map[string]auth.Identity
	userIndex     map[string]string
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:         make(map[string]auth.User),
		usernameIndex: make(map[string]string),
		identities:    make(map[string]auth.Identity),
		userIndex:     make(map[string]string),
	}
}

// Create stores the user record.
func (r *MemoryRepository) Create(_ context.Context, user auth.User) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.usernameIndex[user.Username]; exists {
		return auth.User{}, auth.ErrUsernameExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	r.users[user.ID] = user
	r.usernameIndex[user.Username] = user.ID
	return user, nil
}

// GetByUsername returns a user by username.
func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.usernameIndex[username]; ok {
		return r.users[id], true, nil
	}
	return auth.User{}, false, nil
}

// GetByEmail returns the first user with the given email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	if email == "" {
		return auth.User{}, false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return auth.User{}, false, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

// Update replaces the mutable profile fields of an existing user.
func (r *MemoryRepository) Update(_ context.Context, user auth.User) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	existing.Email = user.Email
	existing.Birthdate = user.Birthdate
	existing.Zodiac = user.Zodiac
	existing.Language = user.Language
	if user.PasswordHash != "" {
		existing.PasswordHash = user.PasswordHash
	}
	existing.UpdatedAt = user.UpdatedAt
	if existing.UpdatedAt.IsZero() {
		existing.UpdatedAt = time.Now().UTC()
	}
	r.users[existing.ID] = existing
	return existing, nil
}

// Delete removes the user and its linked identities.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.usernameIndex, user.Username)
	for key, identity := range r.identities {
		if identity.UserID == id {
			delete(r.identities, key)
			delete(r.userIndex, userIdentityKey(identity.Provider, id))
		}
	}
	return nil
}

// GetIdentity returns an identity by provider and subject.
func (r *MemoryRepository) GetIdentity(_ context.Context, provider, providerSubject string) (auth.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.identities[identityKey(provider, providerSubject)]
	return identity, ok, nil
}

// GetIdentityByUser returns an identity by user and provider.
func (r *MemoryRepository) GetIdentityByUser(_ context.Context, userID, provider string) (auth.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.userIndex[userIdentityKey(provider, userID)]
	if !ok {
		return auth.Identity{}, false, nil
	}
	identity, ok := r.identities[key]
	return identity, ok, nil
}

// UpsertIdentity stores or updates the identity mapping.
func (r *MemoryRepository) UpsertIdentity(_ context.Context, identity auth.Identity) (auth.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if identity.UserID == "" {
		return auth.Identity{}, errors.New("userID is required")
	}
	now := time.Now().UTC()
	key := identityKey(identity.Provider, identity.ProviderSubject)
	if existing, ok := r.identities[key]; ok {
		if identity.RefreshToken != "" {
			existing.RefreshToken = identity.RefreshToken
		}
		if identity.ProviderEmail != "" {
			existing.ProviderEmail = identity.ProviderEmail
		}
		existing.UpdatedAt = now
		r.identities[key] = existing
		return existing, nil
	}
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	identity.CreatedAt = now
	identity.UpdatedAt = now
	r.identities[key] = identity
	r.userIndex[userIdentityKey(identity.Provider, identity.UserID)] = key
	return identity, nil
}

var _ auth.Repository = (*MemoryRepository)(nil)

func identityKey(provider, subject string) string {
	return provider + ":" + subject
}

func userIdentityKey(provider, userID string) string {
	return provider + "@" + userID
}
