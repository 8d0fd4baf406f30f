package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medbook-api/internal/domain/user"
)

func fromDBModel(u *User) *user.User {
	d := &user.User{
		ID:             u.ID.Hex(),
		FullName:       u.FullName,
		Email:          u.Email,
		PasswordHash:   u.Password,
		PhoneNumber:    u.PhoneNumber,
		Avatar:         u.Avatar,
		Role:           user.Role(u.Role),
		AuthType:       user.AuthType(u.AuthType),
		GoogleID:       u.GoogleID,
		FacebookID:     u.FacebookID,
		Descriptions:   u.Descriptions,
		Specialisation: u.Specialisation,

		PasswordModified: u.PasswordModified,
		Deleted:          u.IsDelete,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.Facility != nil {
		d.FacilityID = u.Facility.Hex()
	}
	for _, s := range u.UnavailableTime {
		d.UnavailableTime = append(d.UnavailableTime, user.UnavailableSlot{Date: s.Date, Time: s.Time})
	}
	if u.HealthInfo != nil {
		d.HealthInfo = user.HealthInfo{
			BMIAndBSA:     u.HealthInfo.BMIAndBSA,
			BloodPressure: u.HealthInfo.BloodPressure,
			Temperature:   u.HealthInfo.Temperature,
		}
	}

	return d
}

func toDBModel(d user.User) (*User, error) {
	u := &User{
		FullName:       d.FullName,
		Email:          d.Email,
		Password:       d.PasswordHash,
		PhoneNumber:    d.PhoneNumber,
		Avatar:         d.Avatar,
		Role:           string(d.Role),
		AuthType:       string(d.AuthType),
		GoogleID:       d.GoogleID,
		FacebookID:     d.FacebookID,
		Descriptions:   d.Descriptions,
		Specialisation: d.Specialisation,

		PasswordModified: d.PasswordModified,
		IsDelete:         d.Deleted,

		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	if d.FacilityID != "" {
		oid, err := primitive.ObjectIDFromHex(d.FacilityID)
		if err != nil {
			return nil, ErrInvalidID
		}
		u.Facility = &oid
	}
	for _, s := range d.UnavailableTime {
		u.UnavailableTime = append(u.UnavailableTime, UnavailableSlot{Date: s.Date, Time: s.Time})
	}
	if d.HealthInfo != (user.HealthInfo{}) {
		u.HealthInfo = &HealthInfo{
			BMIAndBSA:     d.HealthInfo.BMIAndBSA,
			BloodPressure: d.HealthInfo.BloodPressure,
			Temperature:   d.HealthInfo.Temperature,
		}
	}

	return u, nil
}
