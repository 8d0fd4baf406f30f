package facility

import (
	domain "medbook-api/internal/domain/facility"
)

type Request struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

type Facility struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Image   string `json:"image"`
}

func ToResponseFacility(f domain.Facility) Facility {
	return Facility{
		ID:      f.ID,
		Name:    f.Name,
		Address: f.Address,
		Image:   f.Image,
	}
}

func ToDomainFacility(r Request) domain.Facility {
	return domain.Facility{
		Name:    r.Name,
		Address: r.Address,
		Image:   r.Image,
	}
}
