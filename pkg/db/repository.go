package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// Repository is the SQLite-backed intention store. It implements
// intention.Store and also persists reminder settings.
type Repository struct {
	db  *DB
	cal scope.Config
}

// NewRepository creates a new Repository. The calendar configuration
// is needed to derive each intention's range start on write.
func NewRepository(db *DB, cal scope.Config) *Repository {
	return &Repository{db: db, cal: cal}
}

var _ intention.Store = (*Repository)(nil)

// Create inserts a new intention. The UNIQUE(scope, range_start)
// constraint rejects a second intention in the same slot; that
// violation surfaces as intention.ErrDuplicateRange.
func (r *Repository) Create(ctx context.Context, it *intention.Intention) error {
	rangeStart := r.cal.Start(it.Scope, it.AnchorDate)

	query := `INSERT INTO intentions
		(id, text, scope, anchor_date, range_start, created_at, updated_at, ai_generated, theme, quote, font)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID, it.Text, it.Scope.String(), it.AnchorDate.UTC(), rangeStart.UTC(),
		it.CreatedAt.UTC(), it.UpdatedAt.UTC(), it.AIGenerated, it.Theme, it.Quote, it.Font)
	if err != nil {
		if isUniqueViolation(err) {
			return intention.ErrDuplicateRange
		}
		return fmt.Errorf("failed to insert intention: %w", err)
	}
	return nil
}

// FindAll returns every intention for the scope, newest first. Range
// containment is not filtered here; the resolver does that against
// computed calendar boundaries.
func (r *Repository) FindAll(ctx context.Context, s scope.Scope) ([]intention.Intention, error) {
	query := `SELECT id, text, scope, anchor_date, created_at, updated_at, ai_generated, theme, quote, font
		FROM intentions WHERE scope = ? ORDER BY anchor_date DESC`
	rows, err := r.db.QueryContext(ctx, query, s.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query intentions: %w", err)
	}
	defer rows.Close()

	var out []intention.Intention
	for rows.Next() {
		it, err := scanIntention(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// FindByID returns one intention or intention.ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*intention.Intention, error) {
	query := `SELECT id, text, scope, anchor_date, created_at, updated_at, ai_generated, theme, quote, font
		FROM intentions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	it, err := scanIntention(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, intention.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// Update rewrites an intention's mutable fields. Moving it into an
// occupied slot fails with intention.ErrDuplicateRange.
func (r *Repository) Update(ctx context.Context, it *intention.Intention) error {
	rangeStart := r.cal.Start(it.Scope, it.AnchorDate)

	query := `UPDATE intentions SET
		text = ?, scope = ?, anchor_date = ?, range_start = ?, updated_at = ?,
		ai_generated = ?, theme = ?, quote = ?, font = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		it.Text, it.Scope.String(), it.AnchorDate.UTC(), rangeStart.UTC(), time.Now().UTC(),
		it.AIGenerated, it.Theme, it.Quote, it.Font, it.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return intention.ErrDuplicateRange
		}
		return fmt.Errorf("failed to update intention: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return intention.ErrNotFound
	}
	return nil
}

// Delete removes an intention by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM intentions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intention: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return intention.ErrNotFound
	}
	return nil
}

// SaveSettings upserts the single reminder settings row as JSON.
func (r *Repository) SaveSettings(ctx context.Context, s reminder.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	query := `INSERT INTO settings (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadSettings returns the stored settings, or the defaults when
// nothing has been saved yet.
func (r *Repository) LoadSettings(ctx context.Context) (reminder.Settings, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reminder.DefaultSettings(), nil
		}
		return reminder.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	var s reminder.Settings
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return reminder.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntention(row rowScanner) (*intention.Intention, error) {
	var it intention.Intention
	var scopeName string
	if err := row.Scan(&it.ID, &it.Text, &scopeName, &it.AnchorDate, &it.CreatedAt,
		&it.UpdatedAt, &it.AIGenerated, &it.Theme, &it.Quote, &it.Font); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan intention: %w", err)
	}
	s, err := scope.Parse(scopeName)
	if err != nil {
		return nil, fmt.Errorf("corrupt scope in row %s: %w", it.ID, err)
	}
	it.Scope = s
	return &it, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
