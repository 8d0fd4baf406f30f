package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"medbook-api/config"
)

const (
	refreshKeyPrefix = "refresh:"
	resetKeyPrefix   = "reset:"
	stateKeyPrefix   = "oauthstate:"
)

// Store keeps the server-side token state: the active refresh token per
// user, single-use password-reset tokens and oauth state nonces. Everything
// expires on its own, nothing is ever listed.
type Store struct {
	rdb        *redis.Client
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func New(ctx context.Context, logger *zap.Logger, cfg config.Redis, refreshTTL, resetTTL time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected successfully")

	return &Store{
		rdb:        rdb,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}, nil
}

func (s *Store) Close() error { return s.rdb.Close() }

func (s *Store) StoreRefreshToken(ctx context.Context, userID, token string) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+userID, token, s.refreshTTL).Err()
}

// FetchRefreshToken returns the tracked refresh token for the user,
// or "" when none is tracked (logged out or expired).
func (s *Store) FetchRefreshToken(ctx context.Context, userID string) (string, error) {
	v, err := s.rdb.Get(ctx, refreshKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (s *Store) DeleteRefreshToken(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+userID).Err()
}

func (s *Store) StoreResetToken(ctx context.Context, token, userID string) error {
	return s.rdb.Set(ctx, resetKeyPrefix+token, userID, s.resetTTL).Err()
}

// ConsumeResetToken atomically fetches and deletes the reset token,
// returning the user id it was issued for, or "" when unknown/expired.
func (s *Store) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.GetDel(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (s *Store) StoreOAuthState(ctx context.Context, state string, ttl time.Duration) error {
	return s.rdb.Set(ctx, stateKeyPrefix+state, "1", ttl).Err()
}

func (s *Store) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	n, err := s.rdb.Del(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
