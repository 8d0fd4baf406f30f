package services

import (
	"context"
	"time"

	"medbook-api/internal/application/ports"
	"medbook-api/internal/domain/assignment"
	domain "medbook-api/internal/domain/user"
)

type AssignmentService struct {
	assignmentRepository assignment.Repository
	userRepository       domain.Repository
}

func NewAssignmentService(
	assignmentRepository assignment.Repository,
	userRepository domain.Repository,
) ports.AssignmentService {
	return &AssignmentService{
		assignmentRepository: assignmentRepository,
		userRepository:       userRepository,
	}
}

// FindForUser lists the assignments the user is a party to, from the side
// matching their role.
func (s *AssignmentService) FindForUser(ctx context.Context, u *domain.User, page, limit int) (assignment.Page, error) {
	if u.Role == domain.RoleDoctor {
		return s.assignmentRepository.FetchByDoctor(ctx, u.ID, page, limit)
	}
	return s.assignmentRepository.FetchByPatient(ctx, u.ID, page, limit)
}

func (s *AssignmentService) Book(ctx context.Context, patientID, doctorID string, date time.Time, notes string) (*assignment.Assignment, error) {
	doctor, err := s.userRepository.FetchByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.Role != domain.RoleDoctor {
		return nil, ErrUserNotFound
	}

	return s.assignmentRepository.Create(ctx, assignment.Assignment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		Notes:     notes,
	})
}
