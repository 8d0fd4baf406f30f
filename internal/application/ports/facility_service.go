package ports

import (
	"context"

	"medbook-api/internal/domain/facility"
)

type FacilityService interface {
	FindByID(ctx context.Context, id facility.ID) (*facility.Facility, error)
	Create(ctx context.Context, f facility.Facility) (*facility.Facility, error)
}
