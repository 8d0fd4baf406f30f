package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"medbook-api/internal/application/ports"
	domain "medbook-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
	tokens         ports.TokenStore
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	tokens ports.TokenStore,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		tokens:         tokens,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchByID(ctx, id)
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return us.userRepository.FetchByEmail(ctx, email)
}

func (us *UserService) UpdateProfile(ctx context.Context, id domain.ID, upd domain.Update) (*domain.User, error) {
	u, err := us.userRepository.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("users_updated_total").Inc()

	return u, nil
}

func (us *UserService) Delete(ctx context.Context, id domain.ID) error {
	if err := us.userRepository.SoftDelete(ctx, id); err != nil {
		return err
	}

	// A deactivated account must not keep a live refresh token.
	if err := us.tokens.DeleteRefreshToken(ctx, id); err != nil {
		return err
	}

	us.mCounter.WithLabelValues("users_deleted_total").Inc()

	return nil
}
