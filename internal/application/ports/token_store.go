package ports

import (
	"context"
	"time"
)

type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID, token string) error
	FetchRefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
	StoreResetToken(ctx context.Context, token, userID string) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
	StoreOAuthState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}
