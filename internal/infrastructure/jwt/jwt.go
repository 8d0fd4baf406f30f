package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has been expired")
)

type TokenType string

const (
	TypeAccess  TokenType = "access_token"
	TypeRefresh TokenType = "refresh_token"
)

type Service struct {
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type Claims struct {
	UserID string    `json:"user_id"`
	Type   TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, TypeAccess, s.accessTTL)
}

func (s *Service) GenerateRefreshToken(userID string) (string, error) {
	return s.generate(userID, TypeRefresh, s.refreshTTL)
}

func (s *Service) generate(userID string, typ TokenType, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
