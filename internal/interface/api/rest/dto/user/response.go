package user

import (
	"time"
)

type (
	HealthInfo struct {
		BMIAndBSA     string `json:"bmiAndBsa,omitempty"`
		BloodPressure string `json:"bloodPressure,omitempty"`
		Temperature   string `json:"temperature,omitempty"`
	}

	// User is the external representation of an account. The password hash,
	// the password-modified stamp and the soft-delete flag never leave the
	// server; unavailable slots are exposed grouped by day.
	User struct {
		ID              string              `json:"id"`
		FullName        string              `json:"fullName"`
		Email           string              `json:"email"`
		PhoneNumber     string              `json:"phoneNumber,omitempty"`
		Avatar          string              `json:"avatar"`
		Role            string              `json:"role"`
		AuthType        string              `json:"authType"`
		Descriptions    string              `json:"descriptions,omitempty"`
		Specialisation  string              `json:"specialisation,omitempty"`
		Facility        string              `json:"facility,omitempty"`
		UnavailableTime map[string][]string `json:"unavailableTime,omitempty"`
		HealthInfo      *HealthInfo         `json:"healthInfor,omitempty"`
		CreatedAt       time.Time           `json:"createdAt"`
		UpdatedAt       time.Time           `json:"updatedAt"`
	}
)
