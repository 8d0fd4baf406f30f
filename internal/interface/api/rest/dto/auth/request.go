package auth

type RegisterRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PhoneNumber    string `json:"phoneNumber"`
	Role           string `json:"role"`
	Descriptions   string `json:"descriptions"`
	Specialisation string `json:"specialisation"`
	Facility       string `json:"facility"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type UnavailableSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type HealthInfo struct {
	BMIAndBSA     string `json:"bmiAndBsa"`
	BloodPressure string `json:"bloodPressure"`
	Temperature   string `json:"temperature"`
}

// UpdateMeRequest is a partial profile patch; nil means "leave as is".
// Supplying both password fields additionally rotates the password.
type UpdateMeRequest struct {
	FullName        *string           `json:"fullName"`
	PhoneNumber     *string           `json:"phoneNumber"`
	Avatar          *string           `json:"avatar"`
	Descriptions    *string           `json:"descriptions"`
	Specialisation  *string           `json:"specialisation"`
	UnavailableTime []UnavailableSlot `json:"unavailableTime"`
	HealthInfo      *HealthInfo       `json:"healthInfor"`

	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type BookAssignmentRequest struct {
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}
