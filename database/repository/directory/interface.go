package directoryRepo

import (
	"context"

	"laborlink/models"
)

// Directory is the read-only identity lookup used for display fields
// and the labor active check. Missing ids are NotFound.
type Directory interface {
	FindLaborByID(ctx context.Context, id string) (*models.Labor, error)
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

// Fresh returns the directory behind any cache layers. Use it for reads
// that gate a write, such as the labor active check.
func Fresh(d Directory) Directory {
	for {
		c, ok := d.(interface{ Uncached() Directory })
		if !ok {
			return d
		}
		d = c.Uncached()
	}
}
