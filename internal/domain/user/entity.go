package user

import (
	"time"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type AuthType string

const (
	AuthLocal    AuthType = "local"
	AuthGoogle   AuthType = "google"
	AuthFacebook AuthType = "facebook"
)

func (a AuthType) Valid() bool {
	switch a {
	case AuthLocal, AuthGoogle, AuthFacebook:
		return true
	}
	return false
}

type (
	// ID is the hex form of the storage object id.
	ID = string

	UnavailableSlot struct {
		Date time.Time
		Time string
	}

	HealthInfo struct {
		BMIAndBSA     string
		BloodPressure string
		Temperature   string
	}

	User struct {
		ID              ID
		FullName        string
		Email           string
		PasswordHash    *string
		PhoneNumber     string
		Avatar          string
		Role            Role
		AuthType        AuthType
		GoogleID        string
		FacebookID      string
		Descriptions    string
		Specialisation  string
		FacilityID      ID
		UnavailableTime []UnavailableSlot
		HealthInfo      HealthInfo

		PasswordModified *time.Time
		Deleted          bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

// StaleToken reports whether a token issued at iat (unix seconds) predates the
// last password change. Sub-second precision is dropped so a token minted in
// the same second as the change stays valid.
func (u *User) StaleToken(iat int64) bool {
	if u.PasswordModified == nil {
		return false
	}
	return u.PasswordModified.Unix() > iat
}

// Update describes a profile patch. Nil fields are left untouched.
// Email, role and password rotate through dedicated flows, never here.
type Update struct {
	FullName        *string
	PhoneNumber     *string
	Avatar          *string
	Descriptions    *string
	Specialisation  *string
	UnavailableTime []UnavailableSlot
	HealthInfo      *HealthInfo
}
