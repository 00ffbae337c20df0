package intention

import (
	"context"
	"errors"

	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// ErrDuplicateRange is returned by a store when an intention already
// occupies the (scope, range) slot. The store is the sole arbiter of
// this invariant; pre-checks in callers are best-effort only.
var ErrDuplicateRange = errors.New("an intention already exists for this scope range")

// ErrNotFound is returned for lookups and mutations of unknown ids.
var ErrNotFound = errors.New("intention not found")

// Store is the persistence contract. FindAll filters by scope only;
// temporal filtering against computed calendar boundaries is the
// resolver's job, because the store's query layer cannot express it.
type Store interface {
	Create(ctx context.Context, it *Intention) error
	FindAll(ctx context.Context, s scope.Scope) ([]Intention, error)
	FindByID(ctx context.Context, id string) (*Intention, error)
	Update(ctx context.Context, it *Intention) error
	Delete(ctx context.Context, id string) error
}
