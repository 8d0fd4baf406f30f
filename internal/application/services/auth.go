package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"medbook-api/config"
	"medbook-api/internal/application/ports"
	domain "medbook-api/internal/domain/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/infrastructure/mq"
	"medbook-api/internal/infrastructure/password"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrStaleToken            = errors.New("password changed after token was issued")
	ErrInvalidResetToken     = errors.New("reset token is invalid or has expired")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOAuthState     = errors.New("invalid oauth state")
)

const oauthStateTTL = 10 * time.Minute

type AuthService struct {
	userRepository domain.Repository
	jwtService     *jwt.Service
	hasher         *password.Hasher
	tokens         ports.TokenStore
	oauthClient    ports.OAuthClient
	mq             ports.RabbitMQ
	mailCfg        config.Mail
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository domain.Repository,
	jwtService *jwt.Service,
	hasher *password.Hasher,
	tokens ports.TokenStore,
	oauthClient ports.OAuthClient,
	rbMQ ports.RabbitMQ,
	mailCfg config.Mail,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		hasher:         hasher,
		tokens:         tokens,
		oauthClient:    oauthClient,
		mq:             rbMQ,
		mailCfg:        mailCfg,
		mCounter:       mCounter,
	}
}

func (as *AuthService) Register(ctx context.Context, u domain.User, plainPassword string) (*domain.User, ports.TokenPair, error) {
	u.AuthType = domain.AuthLocal

	created, err := as.userRepository.Create(ctx, u, plainPassword)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	pair, err := as.issueTokens(ctx, created.ID)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	as.mq.GetInputChan() <- mq.MailEvent{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindWelcome,
		To:      created.Email,
		Subject: "Welcome to MedBook!",
		Body:    fmt.Sprintf("Hi %s, your account is ready.", created.FullName),
	}

	as.mCounter.WithLabelValues("users_registered_total").Inc()

	return created, pair, nil
}

func (as *AuthService) Login(ctx context.Context, email, plainPassword string) (*domain.User, ports.TokenPair, error) {
	u, err := as.userRepository.FetchByEmail(ctx, email)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	if u == nil || u.PasswordHash == nil {
		return nil, ports.TokenPair{}, ErrInvalidCredentials
	}

	if !as.hasher.Verify(plainPassword, *u.PasswordHash) {
		return nil, ports.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := as.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	as.mCounter.WithLabelValues("logins_total").Inc()

	return u, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must be the
// one tracked server-side for the user and must not predate a password change.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	claims, err := as.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if claims.Type != jwt.TypeRefresh {
		return ports.TokenPair{}, ErrInvalidRefreshToken
	}

	stored, err := as.tokens.FetchRefreshToken(ctx, claims.UserID)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if stored == "" || stored != refreshToken {
		return ports.TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := as.userRepository.FetchByID(ctx, claims.UserID)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if u == nil {
		return ports.TokenPair{}, ErrInvalidRefreshToken
	}
	if claims.IssuedAt != nil && u.StaleToken(claims.IssuedAt.Unix()) {
		return ports.TokenPair{}, ErrStaleToken
	}

	pair, err := as.issueTokens(ctx, u.ID)
	if err != nil {
		return ports.TokenPair{}, err
	}

	as.mCounter.WithLabelValues("tokens_refreshed_total").Inc()

	return pair, nil
}

func (as *AuthService) Logout(ctx context.Context, userID domain.ID) error {
	return as.tokens.DeleteRefreshToken(ctx, userID)
}

// ForgotPassword issues a single-use reset token and hands the delivery off
// to the mail worker through the queue.
func (as *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := as.userRepository.FetchByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	if err = as.tokens.StoreResetToken(ctx, token, u.ID); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s?token=%s", as.mailCfg.ResetURL, token)
	as.mq.GetInputChan() <- mq.MailEvent{
		Id:       uuid.New(),
		TS:       time.Now(),
		Kind:     mq.KindResetPassword,
		To:       u.Email,
		Subject:  "Your password reset token (valid for a short time)",
		Body:     fmt.Sprintf("Hi %s, submit a POST request with your new password to: %s", u.FullName, resetURL),
		ResetURL: resetURL,
	}

	as.mCounter.WithLabelValues("password_reset_requests_total").Inc()

	return nil
}

func (as *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	userID, err := as.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrInvalidResetToken
	}

	u, err := as.userRepository.UpdatePassword(ctx, userID, newPassword)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	// Previously issued refresh tokens die with the old password.
	if err = as.tokens.DeleteRefreshToken(ctx, userID); err != nil {
		return nil, err
	}

	as.mCounter.WithLabelValues("passwords_reset_total").Inc()

	return u, nil
}

// ChangePassword verifies the current password, rotates it and reissues the
// token pair so the caller stays logged in past the staleness check.
func (as *AuthService) ChangePassword(ctx context.Context, u *domain.User, current, newPassword string) (ports.TokenPair, error) {
	if u.PasswordHash == nil || !as.hasher.Verify(current, *u.PasswordHash) {
		return ports.TokenPair{}, ErrInvalidCredentials
	}

	updated, err := as.userRepository.UpdatePassword(ctx, u.ID, newPassword)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if updated == nil {
		return ports.TokenPair{}, ErrUserNotFound
	}

	pair, err := as.issueTokens(ctx, u.ID)
	if err != nil {
		return ports.TokenPair{}, err
	}

	as.mCounter.WithLabelValues("passwords_changed_total").Inc()

	return pair, nil
}

func (as *AuthService) OAuthURL(ctx context.Context, authType domain.AuthType) (string, error) {
	state := uuid.NewString()
	if err := as.tokens.StoreOAuthState(ctx, state, oauthStateTTL); err != nil {
		return "", err
	}

	return as.oauthClient.AuthURL(authType, state)
}

func (as *AuthService) OAuthCallback(ctx context.Context, authType domain.AuthType, state, code string) (*domain.User, ports.TokenPair, error) {
	ok, err := as.tokens.ConsumeOAuthState(ctx, state)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	if !ok {
		return nil, ports.TokenPair{}, ErrInvalidOAuthState
	}

	profile, err := as.oauthClient.FetchProfile(ctx, authType, code)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	u, err := as.userRepository.FetchByProviderID(ctx, authType, profile.ProviderID)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	if u == nil {
		candidate := domain.User{
			FullName: profile.FullName,
			Email:    profile.Email,
			Avatar:   profile.Avatar,
			AuthType: authType,
		}
		switch authType {
		case domain.AuthGoogle:
			candidate.GoogleID = profile.ProviderID
		case domain.AuthFacebook:
			candidate.FacebookID = profile.ProviderID
		}

		u, err = as.userRepository.Create(ctx, candidate, "")
		if err != nil {
			return nil, ports.TokenPair{}, err
		}

		as.mCounter.WithLabelValues("users_registered_total").Inc()
	}

	pair, err := as.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	as.mCounter.WithLabelValues("logins_total").Inc()

	return u, pair, nil
}

func (as *AuthService) issueTokens(ctx context.Context, userID domain.ID) (ports.TokenPair, error) {
	access, err := as.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return ports.TokenPair{}, ErrFailedToGenerateToken
	}
	refresh, err := as.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return ports.TokenPair{}, ErrFailedToGenerateToken
	}

	if err = as.tokens.StoreRefreshToken(ctx, userID, refresh); err != nil {
		return ports.TokenPair{}, err
	}

	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
