package assignment

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type (
	ID = string

	// Assignment links a patient to a doctor for a booked visit.
	Assignment struct {
		ID        ID
		DoctorID  string
		PatientID string
		Date      time.Time
		Status    Status
		Notes     string

		Deleted bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Assignments []*Assignment
)

// Page carries one page of assignments plus the counts the API
// pagination block is built from.
type Page struct {
	Records Assignments
	Total   int64
	Limit   int
	Page    int
}

func (p Page) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	n := int(p.Total) / p.Limit
	if int(p.Total)%p.Limit != 0 {
		n++
	}
	return n
}
