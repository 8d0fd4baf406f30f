package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook-api/internal/application/ports"
	userDomain "medbook-api/internal/domain/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/interface/api/rest/apierror"
	facilityDTO "medbook-api/internal/interface/api/rest/dto/facility"
	"medbook-api/internal/interface/api/rest/middleware"
	"medbook-api/internal/interface/api/rest/validator"
)

type FacilityController struct {
	facilityService ports.FacilityService
	logger          *zap.Logger
}

func NewFacilityController(
	r *gin.Engine,
	facilityService ports.FacilityService,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FacilityController {
	fc := &FacilityController{
		facilityService: facilityService,
		logger:          logger,
	}

	r.GET(RouteFacility, fc.GetFacilityHandler)
	r.POST(RouteFacilities, middleware.AuthMiddleware(jwtService, userService), fc.CreateFacilityHandler)

	return fc
}

func (fc *FacilityController) GetFacilityHandler(c *gin.Context) {
	f, err := fc.facilityService.FindByID(c.Request.Context(), c.Param("facility_id"))
	if err != nil {
		fc.respondError(c, "FindByID()", err)
		return
	}

	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Facility not found!"})
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: ResponseMessage,
		Data:    gin.H{"facility": facilityDTO.ToResponseFacility(*f)},
	})
}

func (fc *FacilityController) CreateFacilityHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)
	if u.Role != userDomain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action!"})
		return
	}

	var req facilityDTO.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateFacility(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	f, err := fc.facilityService.Create(c.Request.Context(), facilityDTO.ToDomainFacility(req))
	if err != nil {
		fc.respondError(c, "Create()", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Message: ResponseMessage,
		Data:    gin.H{"facility": facilityDTO.ToResponseFacility(*f)},
	})
}

func (fc *FacilityController) respondError(c *gin.Context, op string, err error) {
	status, msg := apierror.Translate(err)
	if status == http.StatusInternalServerError {
		fc.logger.Error(op+" error", zap.Error(err))
	}
	c.JSON(status, gin.H{"message": msg})
}
