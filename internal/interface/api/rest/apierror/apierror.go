package apierror

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"medbook-api/internal/application/services"
	"medbook-api/internal/domain/user"
	mongoAssignment "medbook-api/internal/infrastructure/db/mongo/assignment"
	mongoFacility "medbook-api/internal/infrastructure/db/mongo/facility"
	mongoUser "medbook-api/internal/infrastructure/db/mongo/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/infrastructure/oauth"
)

// Translate maps service and storage errors to the HTTP status and the safe,
// client-facing message. Anything unrecognized collapses to a generic 500;
// the caller logs the original error server-side.
func Translate(err error) (int, string) {
	var vErr *user.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Error()
	}

	switch {
	case errors.Is(err, mongoUser.ErrEmailAlreadyExists):
		return http.StatusBadRequest, `Duplicate field value: "email". Please use another value!`
	case errors.Is(err, mongoUser.ErrInvalidID),
		errors.Is(err, mongoFacility.ErrInvalidID),
		errors.Is(err, mongoAssignment.ErrInvalidID):
		return http.StatusBadRequest, "Invalid id value!"
	case errors.Is(err, mongoUser.ErrFacilityNotFound):
		return http.StatusNotFound, "No facility with this id!"
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, "User not found!"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect email or password!"
	case errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrInvalidOAuthState):
		return http.StatusUnauthorized, "Invalid token!"
	case errors.Is(err, services.ErrStaleToken):
		return http.StatusUnauthorized, "User recently changed password! Please log in again."
	case errors.Is(err, services.ErrInvalidResetToken):
		return http.StatusBadRequest, "Token is invalid or has expired!"
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has been expired!"
	case errors.Is(err, jwt.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token!"
	case errors.Is(err, oauth.ErrUnknownProvider):
		return http.StatusBadRequest, "Unknown oauth provider!"
	}

	// Raw duplicate-key errors that slipped past the repositories.
	if mongo.IsDuplicateKeyError(err) {
		return http.StatusBadRequest, "Duplicate field value. Please use another value!"
	}

	return http.StatusInternalServerError, "Something went wrong!"
}
