package user

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const MinPasswordLen = 6

// ValidationError carries per-field messages for a rejected record.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	return "invalid user data. " + strings.Join(parts, "; ")
}

// Validate enforces the schema rules on a candidate record before persistence,
// including the role- and auth-type-conditional requirements. plainPassword is
// the not-yet-hashed password supplied on create, empty when none was given.
func Validate(u *User, plainPassword string) error {
	errs := make(map[string]string)

	if strings.TrimSpace(u.FullName) == "" {
		errs["fullName"] = "full name field must be required"
	} else if len(strings.Fields(u.FullName)) < 2 {
		errs["fullName"] = "full name contains at least 2 words"
	}

	if strings.TrimSpace(u.Email) == "" {
		errs["email"] = "email field must be required"
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		errs["email"] = "invalid email format"
	}

	if !u.Role.Valid() {
		errs["role"] = fmt.Sprintf("role is either: %s, %s, %s", RolePatient, RoleDoctor, RoleAdmin)
	}
	if !u.AuthType.Valid() {
		errs["authType"] = fmt.Sprintf("type of auth is either: %s, %s, %s", AuthLocal, AuthGoogle, AuthFacebook)
	}

	if u.AuthType == AuthLocal && u.PasswordHash == nil {
		if plainPassword == "" {
			errs["password"] = "password field must be required"
		}
	}
	if plainPassword != "" && utf8.RuneCountInString(plainPassword) < MinPasswordLen {
		errs["password"] = fmt.Sprintf("password must have more or equal than %d characters", MinPasswordLen)
	}

	if u.Role == RoleDoctor {
		if strings.TrimSpace(u.Specialisation) == "" {
			errs["specialisation"] = "specialisation field must be required"
		}
		if u.FacilityID == "" {
			errs["facility"] = "doctor must belong to a facility"
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
