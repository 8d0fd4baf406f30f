package facility

import (
	"time"
)

type (
	ID = string

	Facility struct {
		ID      ID
		Name    string
		Address string
		Image   string

		Deleted bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Facilities []*Facility
)
