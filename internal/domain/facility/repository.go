package facility

import (
	"context"
)

type Repository interface {
	FetchByID(ctx context.Context, id ID) (*Facility, error)
	Create(ctx context.Context, req Facility) (*Facility, error)
}
