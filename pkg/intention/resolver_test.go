package intention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// fakeStore keeps intentions in a slice and enforces nothing; the
// resolver does the temporal filtering.
type fakeStore struct {
	items   []Intention
	findErr error
}

func (f *fakeStore) Create(ctx context.Context, it *Intention) error {
	f.items = append(f.items, *it)
	return nil
}

func (f *fakeStore) FindAll(ctx context.Context, s scope.Scope) ([]Intention, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []Intention
	for _, it := range f.items {
		if it.Scope == s {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*Intention, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Update(ctx context.Context, it *Intention) error { return nil }
func (f *fakeStore) Delete(ctx context.Context, id string) error     { return nil }

func mustIntention(t *testing.T, text string, s scope.Scope, anchor time.Time) Intention {
	t.Helper()
	it, err := New(text, s, anchor, false)
	if err != nil {
		t.Fatal(err)
	}
	return *it
}

func TestResolveActivePrecedence(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC) // Wednesday
	cal := scope.DefaultConfig()

	day := mustIntention(t, "day focus", scope.Day, now)
	week := mustIntention(t, "week focus", scope.Week, now.AddDate(0, 0, -2))
	month := mustIntention(t, "month focus", scope.Month, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		items []Intention
		want  string
	}{
		{"day beats week", []Intention{week, day}, "day focus"},
		{"week beats month", []Intention{month, week}, "week focus"},
		{"month when alone", []Intention{month}, "month focus"},
		{"none covering", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeStore{items: tt.items}, cal)
			got, err := r.ResolveActive(context.Background(), now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil || got.Text != tt.want {
				t.Errorf("active = %+v, want text %q", got, tt.want)
			}
		})
	}
}

func TestFindForScopeFiltersByRange(t *testing.T) {
	cal := scope.DefaultConfig()
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

	// A day intention from yesterday must not cover today.
	stale := mustIntention(t, "yesterday", scope.Day, now.AddDate(0, 0, -1))
	r := NewResolver(&fakeStore{items: []Intention{stale}}, cal)

	got, err := r.FindForScope(context.Background(), scope.Day, now)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}

	// A month intention anchored mid-month covers the whole month.
	march := mustIntention(t, "march", scope.Month, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))
	r = NewResolver(&fakeStore{items: []Intention{march}}, cal)
	got, err = r.FindForScope(context.Background(), scope.Month, now)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Text != "march" {
		t.Errorf("expected march intention, got %+v", got)
	}
}

func TestExistsForScope(t *testing.T) {
	cal := scope.DefaultConfig()
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	it := mustIntention(t, "taken", scope.Week, now)

	r := NewResolver(&fakeStore{items: []Intention{it}}, cal)
	ok, err := r.ExistsForScope(context.Background(), scope.Week, now)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected slot to be taken")
	}

	ok, err = r.ExistsForScope(context.Background(), scope.Week, now.AddDate(0, 0, 14))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected slot two weeks out to be free")
	}
}

func TestResolverPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db closed")
	r := NewResolver(&fakeStore{findErr: boom}, scope.DefaultConfig())
	_, err := r.ResolveActive(context.Background(), time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}
