package ports

import (
	"context"

	"medbook-api/internal/domain/user"
)

type UserService interface {
	FindByID(ctx context.Context, id user.ID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, id user.ID, upd user.Update) (*user.User, error)
	Delete(ctx context.Context, id user.ID) error
}
