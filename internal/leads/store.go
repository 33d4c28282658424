package leads

import "context"

// Store is the remote collection the adapter talks to. Implementations do no
// validation and hold no state of their own.
type Store interface {
	// ListOrdered returns every lead, newest createdat first.
	ListOrdered(ctx context.Context) ([]Lead, error)
	// FindIDByEmail probes for a lead whose email equals email exactly.
	FindIDByEmail(ctx context.Context, email string) (id string, found bool, err error)
	// Insert persists form and returns the row with store-assigned id and createdat.
	Insert(ctx context.Context, form LeadFormData) (*Lead, error)
	// DeleteByID removes the row if present. A missing id is not an error.
	DeleteByID(ctx context.Context, id string) error
}
