package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook-api/internal/application/ports"
	userDomain "medbook-api/internal/domain/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/interface/api/rest/apierror"
	authDTO "medbook-api/internal/interface/api/rest/dto/auth"
	userDTO "medbook-api/internal/interface/api/rest/dto/user"
	"medbook-api/internal/interface/api/rest/middleware"
	"medbook-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	authService ports.Auth
	logger      *zap.Logger
}

func NewAuthController(
	r *gin.Engine,
	authService ports.Auth,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AuthController {
	ac := &AuthController{
		authService: authService,
		logger:      logger,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteRefreshToken, ac.RefreshTokenHandler)
	r.POST(RouteForgotPassword, ac.ForgotPasswordHandler)
	r.POST(RouteResetPassword, ac.ResetPasswordHandler)

	r.GET(RouteLoginGoogle, ac.OAuthRedirectHandler(userDomain.AuthGoogle))
	r.GET(RouteLoginGoogleCallback, ac.OAuthCallbackHandler(userDomain.AuthGoogle))
	r.GET(RouteLoginFacebook, ac.OAuthRedirectHandler(userDomain.AuthFacebook))
	r.GET(RouteLoginFacebookCallback, ac.OAuthCallbackHandler(userDomain.AuthFacebook))

	r.POST(RouteLogout, middleware.AuthMiddleware(jwtService, userService), ac.LogoutHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req authDTO.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	uDomain := userDomain.User{
		FullName:       validator.NormalizeName(req.FullName),
		Email:          validator.NormalizeEmail(req.Email),
		PhoneNumber:    req.PhoneNumber,
		Role:           userDomain.Role(req.Role),
		Descriptions:   req.Descriptions,
		Specialisation: req.Specialisation,
		FacilityID:     req.Facility,
	}

	u, pair, err := ac.authService.Register(c.Request.Context(), uDomain, req.Password)
	if err != nil {
		ac.respondError(c, "Register()", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Message: ResponseMessage,
		Data: gin.H{
			"user":         userDTO.ToResponseUser(*u),
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req authDTO.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	u, pair, err := ac.authService.Login(
		c.Request.Context(),
		validator.NormalizeEmail(req.Email),
		req.Password,
	)
	if err != nil {
		ac.respondError(c, "Login()", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: ResponseMessage,
		Data: gin.H{
			"user":         userDTO.ToResponseUser(*u),
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (ac *AuthController) RefreshTokenHandler(c *gin.Context) {
	var req authDTO.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRefreshToken(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	pair, err := ac.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ac.respondError(c, "Refresh()", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Message: ResponseMessage,
		Data: gin.H{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (ac *AuthController) ForgotPasswordHandler(c *gin.Context) {
	var req authDTO.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateForgotPassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	err := ac.authService.ForgotPassword(c.Request.Context(), validator.NormalizeEmail(req.Email))
	if err != nil {
		ac.respondError(c, "ForgotPassword()", err)
		return
	}

	c.JSON(http.StatusOK, Response{Message: "Token sent to your email!"})
}

func (ac *AuthController) ResetPasswordHandler(c *gin.Context) {
	var req authDTO.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateResetPassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.authService.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		ac.respondError(c, "ResetPassword()", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Message: ResponseMessage,
		Data:    gin.H{"user": userDTO.ToResponseUser(*u)},
	})
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(*userDomain.User)

	if err := ac.authService.Logout(c.Request.Context(), u.ID); err != nil {
		ac.respondError(c, "Logout()", err)
		return
	}

	c.JSON(http.StatusOK, Response{Message: ResponseMessage})
}

// OAuthRedirectHandler sends the browser to the provider consent screen.
func (ac *AuthController) OAuthRedirectHandler(authType userDomain.AuthType) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := ac.authService.OAuthURL(c.Request.Context(), authType)
		if err != nil {
			ac.respondError(c, "OAuthURL()", err)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, u)
	}
}

func (ac *AuthController) OAuthCallbackHandler(authType userDomain.AuthType) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		code := c.Query("code")
		if state == "" || code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing state or code"})
			return
		}

		u, pair, err := ac.authService.OAuthCallback(c.Request.Context(), authType, state, code)
		if err != nil {
			ac.respondError(c, "OAuthCallback()", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Message: ResponseMessage,
			Data: gin.H{
				"user":         userDTO.ToResponseUser(*u),
				"accessToken":  pair.AccessToken,
				"refreshToken": pair.RefreshToken,
			},
		})
	}
}

func (ac *AuthController) respondError(c *gin.Context, op string, err error) {
	status, msg := apierror.Translate(err)
	if status == http.StatusInternalServerError {
		ac.logger.Error(op+" error", zap.Error(err))
	}
	c.JSON(status, gin.H{"message": msg})
}
