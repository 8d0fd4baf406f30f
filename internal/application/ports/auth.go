package ports

import (
	"context"

	"medbook-api/internal/domain/user"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Auth interface {
	Register(ctx context.Context, u user.User, plainPassword string) (*user.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*user.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, userID user.ID) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (*user.User, error)
	ChangePassword(ctx context.Context, u *user.User, current, newPassword string) (TokenPair, error)
	OAuthURL(ctx context.Context, authType user.AuthType) (string, error)
	OAuthCallback(ctx context.Context, authType user.AuthType, state, code string) (*user.User, TokenPair, error)
}
