package assignment

import (
	"context"
)

type Repository interface {
	FetchByDoctor(ctx context.Context, doctorID string, page, limit int) (Page, error)
	FetchByPatient(ctx context.Context, patientID string, page, limit int) (Page, error)
	Create(ctx context.Context, req Assignment) (*Assignment, error)
}
