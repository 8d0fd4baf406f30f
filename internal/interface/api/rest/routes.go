package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth                  = RouteApiV1 + "/auth"
	RouteRegister              = RouteAuth + "/register"
	RouteLogin                 = RouteAuth + "/login"
	RouteLoginGoogle           = RouteAuth + "/login-google"
	RouteLoginGoogleCallback   = RouteAuth + "/login-google/callback"
	RouteLoginFacebook         = RouteAuth + "/login-facebook"
	RouteLoginFacebookCallback = RouteAuth + "/login-facebook/callback"
	RouteRefreshToken          = RouteAuth + "/refresh-token"
	RouteForgotPassword        = RouteAuth + "/forgot-password"
	RouteResetPassword         = RouteAuth + "/reset-password"
	RouteLogout                = RouteAuth + "/logout"

	// me
	RouteMe            = RouteAuth + "/me"
	RouteMeAssignments = RouteMe + "/assignments"

	// facilities
	RouteFacilities = RouteApiV1 + "/facilities"
	RouteFacility   = RouteFacilities + "/:facility_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
