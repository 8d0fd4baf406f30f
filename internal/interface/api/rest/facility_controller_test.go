package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"medbook-api/internal/application/ports"
	facilityDomain "medbook-api/internal/domain/facility"
	domain "medbook-api/internal/domain/user"
	jwtSvc "medbook-api/internal/infrastructure/jwt"
)

func setupFacilityRouter(t *testing.T, fs ports.FacilityService, us ports.UserService) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	j := newTestJWT()
	NewFacilityController(r, fs, us, zap.NewNop(), j)
	return r, j
}

func TestFacilityController_GetFacilityHandler(t *testing.T) {
	t.Run("200 found", func(t *testing.T) {
		fs := &FakeFacilityService{
			FindByIDFunc: func(ctx context.Context, id facilityDomain.ID) (*facilityDomain.Facility, error) {
				assert.Equal(t, "64f1b2c3d4e5f60718293a4b", id)
				return &facilityDomain.Facility{ID: id, Name: "City Clinic"}, nil
			},
		}
		r, _ := setupFacilityRouter(t, fs, &FakeUserService{})

		rr := doReq(t, r, http.MethodGet, RouteFacilities+"/64f1b2c3d4e5f60718293a4b", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "City Clinic")
	})

	t.Run("404 unknown id", func(t *testing.T) {
		fs := &FakeFacilityService{
			FindByIDFunc: func(ctx context.Context, id facilityDomain.ID) (*facilityDomain.Facility, error) {
				return nil, nil
			},
		}
		r, _ := setupFacilityRouter(t, fs, &FakeUserService{})

		rr := doReq(t, r, http.MethodGet, RouteFacilities+"/000000000000000000000000", nil, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Facility not found!")
	})
}

func TestFacilityController_CreateFacilityHandler(t *testing.T) {
	admin := somePatient()
	admin.Role = domain.RoleAdmin

	us := func(u *domain.User) *FakeUserService {
		return &FakeUserService{
			FindByIDFunc: func(ctx context.Context, id domain.ID) (*domain.User, error) {
				return u, nil
			},
		}
	}

	t.Run("201 admin creates facility", func(t *testing.T) {
		fs := &FakeFacilityService{
			CreateFunc: func(ctx context.Context, f facilityDomain.Facility) (*facilityDomain.Facility, error) {
				assert.Equal(t, "City Clinic", f.Name)
				f.ID = "64f1b2c3d4e5f60718293a4b"
				return &f, nil
			},
		}
		r, j := setupFacilityRouter(t, fs, us(admin))

		rr := doReq(t, r, http.MethodPost, RouteFacilities,
			map[string]any{"name": "City Clinic", "address": "1 Main St"},
			authHeader(t, j, admin.ID))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("403 patient may not create", func(t *testing.T) {
		r, j := setupFacilityRouter(t, &FakeFacilityService{}, us(somePatient()))

		rr := doReq(t, r, http.MethodPost, RouteFacilities,
			map[string]any{"name": "City Clinic"}, authHeader(t, j, "64f1b2c3d4e5f60718293a4b"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("400 name required", func(t *testing.T) {
		r, j := setupFacilityRouter(t, &FakeFacilityService{}, us(admin))

		rr := doReq(t, r, http.MethodPost, RouteFacilities,
			map[string]any{"address": "1 Main St"}, authHeader(t, j, admin.ID))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
