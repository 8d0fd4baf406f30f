package services

import (
	"context"

	"medbook-api/internal/application/ports"
	"medbook-api/internal/domain/facility"
)

type FacilityService struct {
	facilityRepository facility.Repository
}

func NewFacilityService(facilityRepository facility.Repository) ports.FacilityService {
	return &FacilityService{facilityRepository: facilityRepository}
}

func (s *FacilityService) FindByID(ctx context.Context, id facility.ID) (*facility.Facility, error) {
	return s.facilityRepository.FetchByID(ctx, id)
}

func (s *FacilityService) Create(ctx context.Context, f facility.Facility) (*facility.Facility, error) {
	return s.facilityRepository.Create(ctx, f)
}
