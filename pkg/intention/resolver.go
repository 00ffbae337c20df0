package intention

import (
	"context"
	"fmt"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// Resolver answers "which intention is active right now". Precedence
// is fixed: a Day intention beats a Week one, which beats a Month
// one. Finer-grained commitments win for display.
type Resolver struct {
	store Store
	cal   scope.Config
}

// NewResolver creates a resolver over the given store and calendar
// configuration.
func NewResolver(store Store, cal scope.Config) *Resolver {
	return &Resolver{store: store, cal: cal}
}

// ResolveActive returns the highest-precedence intention whose range
// contains now, or nil when none does.
func (r *Resolver) ResolveActive(ctx context.Context, now time.Time) (*Intention, error) {
	for _, s := range []scope.Scope{scope.Day, scope.Week, scope.Month} {
		it, err := r.FindForScope(ctx, s, now)
		if err != nil {
			return nil, err
		}
		if it != nil {
			return it, nil
		}
	}
	return nil, nil
}

// FindForScope returns the intention of the given scope whose range
// contains ref, or nil. The store hands back every intention for the
// scope; containment against the computed calendar boundary is
// checked here.
func (r *Resolver) FindForScope(ctx context.Context, s scope.Scope, ref time.Time) (*Intention, error) {
	items, err := r.store.FindAll(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("find %s intentions: %w", s, err)
	}
	for i := range items {
		if r.cal.Contains(s, items[i].AnchorDate, ref) {
			return &items[i], nil
		}
	}
	return nil, nil
}

// ExistsForScope reports whether the (scope, range) slot around ref
// is already taken.
func (r *Resolver) ExistsForScope(ctx context.Context, s scope.Scope, ref time.Time) (bool, error) {
	it, err := r.FindForScope(ctx, s, ref)
	if err != nil {
		return false, err
	}
	return it != nil, nil
}
