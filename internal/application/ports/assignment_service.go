package ports

import (
	"context"
	"time"

	"medbook-api/internal/domain/assignment"
	"medbook-api/internal/domain/user"
)

type AssignmentService interface {
	FindForUser(ctx context.Context, u *user.User, page, limit int) (assignment.Page, error)
	Book(ctx context.Context, patientID, doctorID string, date time.Time, notes string) (*assignment.Assignment, error)
}
