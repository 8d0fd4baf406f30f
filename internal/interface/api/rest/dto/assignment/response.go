package assignment

import (
	"time"

	domain "medbook-api/internal/domain/assignment"
)

type (
	Assignment struct {
		ID      string    `json:"id"`
		Doctor  string    `json:"doctor"`
		Patient string    `json:"patient"`
		Date    time.Time `json:"date"`
		Status  string    `json:"status"`
		Notes   string    `json:"notes,omitempty"`
	}

	Pagination struct {
		Records      int   `json:"records"`
		TotalRecords int64 `json:"total_records"`
		Limit        int   `json:"limit"`
		Page         int   `json:"page"`
		TotalPage    int   `json:"total_page"`
	}

	ListData struct {
		Records    []Assignment `json:"records"`
		Pagination Pagination   `json:"pagination"`
	}
)

func ToResponseAssignment(a domain.Assignment) Assignment {
	return Assignment{
		ID:      a.ID,
		Doctor:  a.DoctorID,
		Patient: a.PatientID,
		Date:    a.Date,
		Status:  string(a.Status),
		Notes:   a.Notes,
	}
}

func ToResponsePage(p domain.Page) ListData {
	records := make([]Assignment, 0, len(p.Records))
	for _, a := range p.Records {
		records = append(records, ToResponseAssignment(*a))
	}

	return ListData{
		Records: records,
		Pagination: Pagination{
			Records:      len(records),
			TotalRecords: p.Total,
			Limit:        p.Limit,
			Page:         p.Page,
			TotalPage:    p.TotalPages(),
		},
	}
}
