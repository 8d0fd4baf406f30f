package user

import (
	domain "medbook-api/internal/domain/user"
)

const slotDateLayout = "2006-01-02"

func ToResponseUser(uDomain domain.User) User {
	u := User{
		ID:             uDomain.ID,
		FullName:       uDomain.FullName,
		Email:          uDomain.Email,
		PhoneNumber:    uDomain.PhoneNumber,
		Avatar:         uDomain.Avatar,
		Role:           string(uDomain.Role),
		AuthType:       string(uDomain.AuthType),
		Descriptions:   uDomain.Descriptions,
		Specialisation: uDomain.Specialisation,
		Facility:       uDomain.FacilityID,
		CreatedAt:      uDomain.CreatedAt,
		UpdatedAt:      uDomain.UpdatedAt,
	}

	if len(uDomain.UnavailableTime) > 0 {
		u.UnavailableTime = groupSlotsByDate(uDomain.UnavailableTime)
	}
	if uDomain.HealthInfo != (domain.HealthInfo{}) {
		u.HealthInfo = &HealthInfo{
			BMIAndBSA:     uDomain.HealthInfo.BMIAndBSA,
			BloodPressure: uDomain.HealthInfo.BloodPressure,
			Temperature:   uDomain.HealthInfo.Temperature,
		}
	}

	return u
}

func groupSlotsByDate(slots []domain.UnavailableSlot) map[string][]string {
	grouped := make(map[string][]string, len(slots))
	for _, s := range slots {
		day := s.Date.Format(slotDateLayout)
		grouped[day] = append(grouped[day], s.Time)
	}
	return grouped
}
