package validator

import (
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"medbook-api/internal/domain/user"
	"medbook-api/internal/interface/api/rest/dto/auth"
	"medbook-api/internal/interface/api/rest/dto/facility"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe

	slotDateLayout = "2006-01-02"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

// NormalizeName trims and NFC-normalizes a submitted human name so the
// same name always compares and stores identically.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ValidatePage(page, limit string, defLimit int) (int, int, error) {
	p, l := 1, defLimit
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return 0, 0, errors.New("invalid page")
		}
		p = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, errors.New("invalid limit")
		}
		l = n
	}
	return p, l, nil
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validateFullName(errs, r.FullName)
	validatePassword(errs, "password", r.Password, true)

	if r.Role != "" {
		role := user.Role(r.Role)
		if !role.Valid() || role == user.RoleAdmin {
			errs["role"] = "role is either: patient, doctor"
		}
	}
	if r.PhoneNumber != "" && !phoneRe.MatchString(r.PhoneNumber) {
		errs["phoneNumber"] = "invalid phone number format"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validatePassword(errs, "password", r.Password, true)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateRefreshToken(r auth.RefreshTokenRequest) map[string]string {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return map[string]string{"refreshToken": "refreshToken is required"}
	}
	return nil
}

func ValidateForgotPassword(r auth.ForgotPasswordRequest) map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, r.Email)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateResetPassword(r auth.ResetPasswordRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Token) == "" {
		errs["token"] = "token is required"
	}
	validatePassword(errs, "password", r.Password, true)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateUpdateMe(r auth.UpdateMeRequest) map[string]string {
	errs := make(map[string]string)

	if r.FullName != nil {
		validateFullName(errs, *r.FullName)
	}
	if r.PhoneNumber != nil && *r.PhoneNumber != "" && !phoneRe.MatchString(*r.PhoneNumber) {
		errs["phoneNumber"] = "invalid phone number format"
	}
	if r.Avatar != nil {
		if u, err := url.Parse(*r.Avatar); err != nil || u.Scheme == "" || u.Host == "" {
			errs["avatar"] = "invalid url"
		}
	}
	for _, s := range r.UnavailableTime {
		if _, err := time.Parse(slotDateLayout, s.Date); err != nil {
			errs["unavailableTime"] = "slot date must be YYYY-MM-DD"
			break
		}
		if strings.TrimSpace(s.Time) == "" {
			errs["unavailableTime"] = "slot time is required"
			break
		}
	}

	// changing the password needs both halves
	if (r.Password == "") != (r.NewPassword == "") {
		errs["password"] = "password and newPassword must be supplied together"
	}
	if r.NewPassword != "" {
		validatePassword(errs, "newPassword", r.NewPassword, true)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateBookAssignment(r auth.BookAssignmentRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Doctor) == "" {
		errs["doctor"] = "doctor is required"
	}
	if d, err := time.Parse(time.RFC3339, r.Date); err != nil {
		errs["date"] = "date must be RFC3339"
	} else if d.Before(time.Now()) {
		errs["date"] = "date must be in the future"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateFacility(r facility.Request) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if r.Image != "" {
		if u, err := url.Parse(r.Image); err != nil || u.Scheme == "" || u.Host == "" {
			errs["image"] = "invalid url"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	email = NormalizeEmail(email)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}
}

func validateFullName(errs map[string]string, name string) {
	name = NormalizeName(name)
	if name == "" {
		errs["fullName"] = "fullName is required"
	} else if len(strings.Fields(name)) < 2 {
		errs["fullName"] = "fullName contains at least 2 words"
	} else if utf8.RuneCountInString(name) > 128 {
		errs["fullName"] = "fullName is too long"
	}
}

func validatePassword(errs map[string]string, field, pw string, required bool) {
	if pw == "" {
		if required {
			errs[field] = field + " is required"
		}
		return
	}
	if l := utf8.RuneCountInString(pw); l < minPasswordLen || l > maxPasswordLen {
		errs[field] = field + " length must be 6-72 characters"
	}
}
