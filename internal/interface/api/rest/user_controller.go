package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook-api/config"
	"medbook-api/internal/application/ports"
	userDomain "medbook-api/internal/domain/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/interface/api/rest/apierror"
	assignmentDTO "medbook-api/internal/interface/api/rest/dto/assignment"
	authDTO "medbook-api/internal/interface/api/rest/dto/auth"
	userDTO "medbook-api/internal/interface/api/rest/dto/user"
	"medbook-api/internal/interface/api/rest/middleware"
	"medbook-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService       ports.UserService
	authService       ports.Auth
	assignmentService ports.AssignmentService
	logger            *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	authService ports.Auth,
	assignmentService ports.AssignmentService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService:       userService,
		authService:       authService,
		assignmentService: assignmentService,
		logger:            logger,
	}

	authed := middleware.AuthMiddleware(jwtService, userService)

	r.GET(RouteMe, authed, uc.GetMeHandler)
	r.PATCH(RouteMe, authed, uc.UpdateMeHandler)
	r.DELETE(RouteMe, authed, uc.DeleteMeHandler)
	r.GET(RouteMeAssignments, authed, uc.GetMyAssignmentsHandler)
	r.POST(RouteMeAssignments, authed, uc.BookAssignmentHandler)

	return uc
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	c.JSON(http.StatusOK, Response{
		Message: ResponseMessage,
		Data:    gin.H{"user": userDTO.ToResponseUser(*u)},
	})
}

func (uc *UserController) UpdateMeHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	var req authDTO.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateUpdateMe(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	upd, err := toDomainUpdate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}

	updated, err := uc.userService.UpdateProfile(c.Request.Context(), u.ID, upd)
	if err != nil {
		uc.respondError(c, "UpdateProfile()", err)
		return
	}

	data := gin.H{"user": userDTO.ToResponseUser(*updated)}

	// Rotating the password invalidates every issued token, so the
	// caller gets a fresh pair in the same response.
	if req.Password != "" && req.NewPassword != "" {
		pair, err := uc.authService.ChangePassword(c.Request.Context(), u, req.Password, req.NewPassword)
		if err != nil {
			uc.respondError(c, "ChangePassword()", err)
			return
		}
		data["accessToken"] = pair.AccessToken
		data["refreshToken"] = pair.RefreshToken
	}

	c.JSON(http.StatusOK, Response{Message: ResponseMessage, Data: data})
}

func (uc *UserController) DeleteMeHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	if err := uc.userService.Delete(c.Request.Context(), u.ID); err != nil {
		uc.respondError(c, "Delete()", err)
		return
	}

	c.JSON(http.StatusOK, Response{Message: ResponseMessage})
}

func (uc *UserController) GetMyAssignmentsHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	page, limit, err := validator.ValidatePage(c.Query("page"), c.Query("limit"), config.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := uc.assignmentService.FindForUser(c.Request.Context(), u, page, limit)
	if err != nil {
		uc.respondError(c, "FindForUser()", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: ResponseMessage,
		Data:    assignmentDTO.ToResponsePage(p),
	})
}

func (uc *UserController) BookAssignmentHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	var req authDTO.BookAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateBookAssignment(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}

	a, err := uc.assignmentService.Book(c.Request.Context(), u.ID, req.Doctor, date, req.Notes)
	if err != nil {
		uc.respondError(c, "Book()", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Message: ResponseMessage,
		Data:    gin.H{"assignment": assignmentDTO.ToResponseAssignment(*a)},
	})
}

func (uc *UserController) respondError(c *gin.Context, op string, err error) {
	status, msg := apierror.Translate(err)
	if status == http.StatusInternalServerError {
		uc.logger.Error(op+" error", zap.Error(err))
	}
	c.JSON(status, gin.H{"message": msg})
}

func toDomainUpdate(req authDTO.UpdateMeRequest) (userDomain.Update, error) {
	upd := userDomain.Update{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Avatar:         req.Avatar,
		Descriptions:   req.Descriptions,
		Specialisation: req.Specialisation,
	}
	if upd.FullName != nil {
		normalized := validator.NormalizeName(*upd.FullName)
		upd.FullName = &normalized
	}
	if req.HealthInfo != nil {
		upd.HealthInfo = &userDomain.HealthInfo{
			BMIAndBSA:     req.HealthInfo.BMIAndBSA,
			BloodPressure: req.HealthInfo.BloodPressure,
			Temperature:   req.HealthInfo.Temperature,
		}
	}
	for _, s := range req.UnavailableTime {
		d, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			return userDomain.Update{}, err
		}
		upd.UnavailableTime = append(upd.UnavailableTime, userDomain.UnavailableSlot{
			Date: d,
			Time: s.Time,
		})
	}
	return upd, nil
}
