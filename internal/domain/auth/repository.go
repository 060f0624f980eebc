package auth

import "context"

// Repository abstracts user persistence. Usernames are unique.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id string) (User, bool, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id string) error
	GetIdentity(ctx context.Context, provider, providerSubject string) (Identity, bool, error)
	GetIdentityByUser(ctx context.Context, userID, provider string) (Identity, bool, error)
	UpsertIdentity(ctx context.Context, identity Identity) (Identity, error)
}
