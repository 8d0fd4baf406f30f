package user

import (
	"context"
)

type Repository interface {
	FetchByID(ctx context.Context, id ID) (*User, error)
	FetchByEmail(ctx context.Context, email string) (*User, error)
	FetchByProviderID(ctx context.Context, authType AuthType, providerID string) (*User, error)
	Create(ctx context.Context, req User, plainPassword string) (*User, error)
	Update(ctx context.Context, id ID, upd Update) (*User, error)
	UpdatePassword(ctx context.Context, id ID, plainPassword string) (*User, error)
	SoftDelete(ctx context.Context, id ID) error
}
