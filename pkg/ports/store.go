package ports

import (
	"context"
	"errors"

	"github.com/aretw0/mockcoach/pkg/plan"
)

// ErrResultNotFound is returned when no result is stored under an ID.
var ErrResultNotFound = errors.New("result not found")

// ResultStore defines the interface for persisting simulation results, so a plan can be
// simulated once and its trace fetched again later.
type ResultStore interface {
	// Save persists the result under id, replacing any previous one.
	Save(ctx context.Context, id string, res *plan.Result) error

	// Load retrieves the result for id.
	// Returns ErrResultNotFound if nothing is stored under it.
	Load(ctx context.Context, id string) (*plan.Result, error)

	// Delete removes the result. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of the stored results.
	List(ctx context.Context) ([]string, error)
}
