package ports

import (
	"context"

	"medbook-api/internal/domain/user"
	"medbook-api/internal/infrastructure/oauth"
)

type OAuthClient interface {
	AuthURL(authType user.AuthType, state string) (string, error)
	FetchProfile(ctx context.Context, authType user.AuthType, code string) (*oauth.Profile, error)
}
