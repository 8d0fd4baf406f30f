package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medbook-api/internal/application/ports"
	"medbook-api/internal/application/services"
	"medbook-api/internal/domain/assignment"
	"medbook-api/internal/domain/facility"
	domain "medbook-api/internal/domain/user"
	userDB "medbook-api/internal/infrastructure/db/mongo/user"
	jwtSvc "medbook-api/internal/infrastructure/jwt"
)

type FakeAuthService struct {
	RegisterFunc       func(ctx context.Context, u domain.User, plainPassword string) (*domain.User, ports.TokenPair, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (ports.TokenPair, error)
	LogoutFunc         func(ctx context.Context, userID domain.ID) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) (*domain.User, error)
	ChangePasswordFunc func(ctx context.Context, u *domain.User, current, newPassword string) (ports.TokenPair, error)
	OAuthURLFunc       func(ctx context.Context, authType domain.AuthType) (string, error)
	OAuthCallbackFunc  func(ctx context.Context, authType domain.AuthType, state, code string) (*domain.User, ports.TokenPair, error)
}

func (f *FakeAuthService) Register(ctx context.Context, u domain.User, plainPassword string) (*domain.User, ports.TokenPair, error) {
	if f.RegisterFunc == nil {
		return nil, ports.TokenPair{}, errors.New("not used")
	}
	return f.RegisterFunc(ctx, u, plainPassword)
}
func (f *FakeAuthService) Login(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
	if f.LoginFunc == nil {
		return nil, ports.TokenPair{}, errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}
func (f *FakeAuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	if f.RefreshFunc == nil {
		return ports.TokenPair{}, errors.New("not used")
	}
	return f.RefreshFunc(ctx, refreshToken)
}
func (f *FakeAuthService) Logout(ctx context.Context, userID domain.ID) error {
	if f.LogoutFunc == nil {
		return errors.New("not used")
	}
	return f.LogoutFunc(ctx, userID)
}
func (f *FakeAuthService) ForgotPassword(ctx context.Context, email string) error {
	if f.ForgotPasswordFunc == nil {
		return errors.New("not used")
	}
	return f.ForgotPasswordFunc(ctx, email)
}
func (f *FakeAuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	if f.ResetPasswordFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResetPasswordFunc(ctx, token, newPassword)
}
func (f *FakeAuthService) ChangePassword(ctx context.Context, u *domain.User, current, newPassword string) (ports.TokenPair, error) {
	if f.ChangePasswordFunc == nil {
		return ports.TokenPair{}, errors.New("not used")
	}
	return f.ChangePasswordFunc(ctx, u, current, newPassword)
}
func (f *FakeAuthService) OAuthURL(ctx context.Context, authType domain.AuthType) (string, error) {
	if f.OAuthURLFunc == nil {
		return "", errors.New("not used")
	}
	return f.OAuthURLFunc(ctx, authType)
}
func (f *FakeAuthService) OAuthCallback(ctx context.Context, authType domain.AuthType, state, code string) (*domain.User, ports.TokenPair, error) {
	if f.OAuthCallbackFunc == nil {
		return nil, ports.TokenPair{}, errors.New("not used")
	}
	return f.OAuthCallbackFunc(ctx, authType, state, code)
}

type FakeUserService struct {
	FindByIDFunc      func(ctx context.Context, id domain.ID) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id domain.ID, upd domain.Update) (*domain.User, error)
	DeleteFunc        func(ctx context.Context, id domain.ID) error
}

func (f *FakeUserService) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) UpdateProfile(ctx context.Context, id domain.ID, upd domain.Update) (*domain.User, error) {
	if f.UpdateProfileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateProfileFunc(ctx, id, upd)
}
func (f *FakeUserService) Delete(ctx context.Context, id domain.ID) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, id)
}

type FakeAssignmentService struct {
	FindForUserFunc func(ctx context.Context, u *domain.User, page, limit int) (assignment.Page, error)
	BookFunc        func(ctx context.Context, patientID, doctorID string, date time.Time, notes string) (*assignment.Assignment, error)
}

func (f *FakeAssignmentService) FindForUser(ctx context.Context, u *domain.User, page, limit int) (assignment.Page, error) {
	if f.FindForUserFunc == nil {
		return assignment.Page{}, errors.New("not used")
	}
	return f.FindForUserFunc(ctx, u, page, limit)
}
func (f *FakeAssignmentService) Book(ctx context.Context, patientID, doctorID string, date time.Time, notes string) (*assignment.Assignment, error) {
	if f.BookFunc == nil {
		return nil, errors.New("not used")
	}
	return f.BookFunc(ctx, patientID, doctorID, date, notes)
}

type FakeFacilityService struct {
	FindByIDFunc func(ctx context.Context, id facility.ID) (*facility.Facility, error)
	CreateFunc   func(ctx context.Context, f facility.Facility) (*facility.Facility, error)
}

func (f *FakeFacilityService) FindByID(ctx context.Context, id facility.ID) (*facility.Facility, error) {
	if f.FindByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByIDFunc(ctx, id)
}
func (f *FakeFacilityService) Create(ctx context.Context, fac facility.Facility) (*facility.Facility, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, fac)
}

func newTestJWT() *jwtSvc.Service {
	return jwtSvc.New("test-secret", time.Hour, 7*24*time.Hour)
}

func setupAuthRouter(t *testing.T, as ports.Auth, us ports.UserService) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	j := newTestJWT()
	NewAuthController(r, as, us, zap.NewNop(), j)
	return r, j
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func somePatient() *domain.User {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	return &domain.User{
		ID:           "64f1b2c3d4e5f60718293a4b",
		FullName:     "Jane Doe",
		Email:        "jane.doe@example.com",
		PasswordHash: &hash,
		Role:         domain.RolePatient,
		AuthType:     domain.AuthLocal,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestAuthController_RegisterHandler(t *testing.T) {
	validBody := map[string]any{
		"fullName": "Jane Doe",
		"email":    "jane.doe@example.com",
		"password": "secret12",
	}

	tests := []struct {
		name       string
		body       any
		mockAS     func() ports.Auth
		wantStatus int
		wantMsg    string
	}{
		{
			name: "201 success",
			body: validBody,
			mockAS: func() ports.Auth {
				return &FakeAuthService{
					RegisterFunc: func(ctx context.Context, u domain.User, plainPassword string) (*domain.User, ports.TokenPair, error) {
						assert.Equal(t, "jane.doe@example.com", u.Email)
						assert.Equal(t, "secret12", plainPassword)
						return somePatient(), ports.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
					},
				}
			},
			wantStatus: http.StatusCreated,
			wantMsg:    ResponseMessage,
		},
		{
			name: "400 duplicate email",
			body: validBody,
			mockAS: func() ports.Auth {
				return &FakeAuthService{
					RegisterFunc: func(ctx context.Context, u domain.User, plainPassword string) (*domain.User, ports.TokenPair, error) {
						return nil, ports.TokenPair{}, userDB.ErrEmailAlreadyExists
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    `Duplicate field value: "email". Please use another value!`,
		},
		{
			name:       "400 malformed json",
			body:       "{not json",
			mockAS:     func() ports.Auth { return &FakeAuthService{} },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
		{
			name: "400 missing password",
			body: map[string]any{"fullName": "Jane Doe", "email": "jane.doe@example.com"},
			mockAS: func() ports.Auth {
				return &FakeAuthService{}
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
		{
			name: "400 admin role not self assignable",
			body: map[string]any{
				"fullName": "Jane Doe",
				"email":    "jane.doe@example.com",
				"password": "secret12",
				"role":     "admin",
			},
			mockAS: func() ports.Auth {
				return &FakeAuthService{}
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupAuthRouter(t, tt.mockAS(), &FakeUserService{})

			rr := doReq(t, r, http.MethodPost, RouteRegister, tt.body, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp["message"])

			if tt.wantStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "at", data["accessToken"])
				assert.Equal(t, "rt", data["refreshToken"])

				u := data["user"].(map[string]any)
				assert.Equal(t, "jane.doe@example.com", u["email"])
				_, hasPassword := u["password"]
				assert.False(t, hasPassword)
				_, hasHash := u["passwordHash"]
				assert.False(t, hasHash)
			}
		})
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockAS     func() ports.Auth
		wantStatus int
		wantMsg    string
	}{
		{
			name: "200 success",
			body: map[string]any{"email": "jane.doe@example.com", "password": "secret12"},
			mockAS: func() ports.Auth {
				return &FakeAuthService{
					LoginFunc: func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
						return somePatient(), ports.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			wantMsg:    ResponseMessage,
		},
		{
			name: "401 wrong password",
			body: map[string]any{"email": "jane.doe@example.com", "password": "wrongpass"},
			mockAS: func() ports.Auth {
				return &FakeAuthService{
					LoginFunc: func(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
						return nil, ports.TokenPair{}, services.ErrInvalidCredentials
					},
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Incorrect email or password!",
		},
		{
			name:       "400 empty body fields",
			body:       map[string]any{},
			mockAS:     func() ports.Auth { return &FakeAuthService{} },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupAuthRouter(t, tt.mockAS(), &FakeUserService{})

			rr := doReq(t, r, http.MethodPost, RouteLogin, tt.body, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp["message"])
		})
	}
}

func TestAuthController_RefreshTokenHandler(t *testing.T) {
	t.Run("201 rotates the pair", func(t *testing.T) {
		as := &FakeAuthService{
			RefreshFunc: func(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
				assert.Equal(t, "old-refresh", refreshToken)
				return ports.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}, nil
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteRefreshToken, map[string]any{"refreshToken": "old-refresh"}, nil)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		assert.Equal(t, "new-at", data["accessToken"])
		assert.Equal(t, "new-rt", data["refreshToken"])
	})

	t.Run("401 expired refresh token", func(t *testing.T) {
		as := &FakeAuthService{
			RefreshFunc: func(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
				return ports.TokenPair{}, jwtSvc.ErrTokenExpired
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteRefreshToken, map[string]any{"refreshToken": "stale"}, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token has been expired!")
	})
}

func TestAuthController_ForgotPasswordHandler(t *testing.T) {
	t.Run("200 token sent", func(t *testing.T) {
		as := &FakeAuthService{
			ForgotPasswordFunc: func(ctx context.Context, email string) error {
				assert.Equal(t, "jane.doe@example.com", email)
				return nil
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteForgotPassword, map[string]any{"email": "Jane.Doe@Example.com"}, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token sent to your email!")
	})

	t.Run("404 unknown email", func(t *testing.T) {
		as := &FakeAuthService{
			ForgotPasswordFunc: func(ctx context.Context, email string) error {
				return services.ErrUserNotFound
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteForgotPassword, map[string]any{"email": "nobody@example.com"}, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "User not found!")
	})
}

func TestAuthController_ResetPasswordHandler(t *testing.T) {
	t.Run("200 password reset", func(t *testing.T) {
		as := &FakeAuthService{
			ResetPasswordFunc: func(ctx context.Context, token, newPassword string) (*domain.User, error) {
				assert.Equal(t, "reset-token", token)
				assert.Equal(t, "newsecret", newPassword)
				return somePatient(), nil
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteResetPassword,
			map[string]any{"token": "reset-token", "password": "newsecret"}, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("400 invalid token", func(t *testing.T) {
		as := &FakeAuthService{
			ResetPasswordFunc: func(ctx context.Context, token, newPassword string) (*domain.User, error) {
				return nil, services.ErrInvalidResetToken
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteResetPassword,
			map[string]any{"token": "forged", "password": "newsecret"}, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token is invalid or has expired!")
	})
}

func TestAuthController_LogoutHandler(t *testing.T) {
	u := somePatient()

	t.Run("200 with valid access token", func(t *testing.T) {
		loggedOut := false
		as := &FakeAuthService{
			LogoutFunc: func(ctx context.Context, userID domain.ID) error {
				assert.Equal(t, u.ID, userID)
				loggedOut = true
				return nil
			},
		}
		us := &FakeUserService{
			FindByIDFunc: func(ctx context.Context, id domain.ID) (*domain.User, error) {
				return u, nil
			},
		}
		r, j := setupAuthRouter(t, as, us)

		token, err := j.GenerateAccessToken(u.ID)
		require.NoError(t, err)

		rr := doReq(t, r, http.MethodPost, RouteLogout, nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, loggedOut)
	})

	t.Run("401 without token", func(t *testing.T) {
		r, _ := setupAuthRouter(t, &FakeAuthService{}, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteLogout, nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("401 expired access token", func(t *testing.T) {
		r, _ := setupAuthRouter(t, &FakeAuthService{}, &FakeUserService{})

		expired := jwtSvc.New("test-secret", -time.Hour, 7*24*time.Hour)
		token, err := expired.GenerateAccessToken(u.ID)
		require.NoError(t, err)

		rr := doReq(t, r, http.MethodPost, RouteLogout, nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token has been expired!")
	})

	t.Run("401 refresh token is not an access token", func(t *testing.T) {
		us := &FakeUserService{
			FindByIDFunc: func(ctx context.Context, id domain.ID) (*domain.User, error) {
				return u, nil
			},
		}
		r, j := setupAuthRouter(t, &FakeAuthService{}, us)

		token, err := j.GenerateRefreshToken(u.ID)
		require.NoError(t, err)

		rr := doReq(t, r, http.MethodPost, RouteLogout, nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthController_OAuthHandlers(t *testing.T) {
	t.Run("307 redirect to consent screen", func(t *testing.T) {
		as := &FakeAuthService{
			OAuthURLFunc: func(ctx context.Context, authType domain.AuthType) (string, error) {
				assert.Equal(t, domain.AuthGoogle, authType)
				return "https://accounts.google.com/o/oauth2/auth?state=abc", nil
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodGet, RouteLoginGoogle, nil, nil)

		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Contains(t, rr.Header().Get("Location"), "accounts.google.com")
	})

	t.Run("200 callback issues tokens", func(t *testing.T) {
		oauthUser := somePatient()
		oauthUser.AuthType = domain.AuthFacebook
		oauthUser.PasswordHash = nil

		as := &FakeAuthService{
			OAuthCallbackFunc: func(ctx context.Context, authType domain.AuthType, state, code string) (*domain.User, ports.TokenPair, error) {
				assert.Equal(t, domain.AuthFacebook, authType)
				assert.Equal(t, "st", state)
				assert.Equal(t, "cd", code)
				return oauthUser, ports.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
			},
		}
		r, _ := setupAuthRouter(t, as, &FakeUserService{})

		rr := doReq(t, r, http.MethodGet, RouteLoginFacebookCallback+"?state=st&code=cd", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"accessToken":"at"`)
	})

	t.Run("400 callback missing state", func(t *testing.T) {
		r, _ := setupAuthRouter(t, &FakeAuthService{}, &FakeUserService{})

		rr := doReq(t, r, http.MethodGet, RouteLoginGoogleCallback+"?code=cd", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
