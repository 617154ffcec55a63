package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mintleaf/seating/internal/model"
)

// TableRepo provides read access to the `venue_tables` and
// `table_combinations` tables.  Combinations are stored as a header
// row plus ordered member rows in `table_combination_members`.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, name, zone_id, min_seats, max_seats, is_active, is_combinable, group_label, tags, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (model.Table, error) {
	var (
		t    model.Table
		tags string
	)
	err := row.Scan(&t.ID, &t.Name, &t.ZoneID, &t.MinSeats, &t.MaxSeats,
		&t.Active, &t.Combinable, &t.GroupLabel, &tags, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Table{}, err
	}
	t.Tags = splitList(tags)
	return t, nil
}

// ListAll returns every table ordered by zone then name.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	return r.list(ctx, `SELECT `+tableColumns+` FROM venue_tables ORDER BY zone_id, name`)
}

// ListByZone returns the tables of one zone ordered by name.
func (r *TableRepo) ListByZone(ctx context.Context, zoneID string) ([]model.Table, error) {
	return r.list(ctx, `SELECT `+tableColumns+` FROM venue_tables WHERE zone_id = ? ORDER BY name`, zoneID)
}

func (r *TableRepo) list(ctx context.Context, query string, args ...any) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []model.Table
	for rows.Next() {
		t, scanErr := scanTable(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// GetByID returns a single table or ErrNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id string) (model.Table, error) {
	t, err := scanTable(r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM venue_tables WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Table{}, ErrNotFound
	}
	return t, err
}

// ListCombinations returns every combination with its member table ids
// in stored order.
func (r *TableRepo) ListCombinations(ctx context.Context) ([]model.TableCombination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.is_active, c.created_at, c.updated_at, m.table_id
		 FROM table_combinations c
		 JOIN table_combination_members m ON m.combination_id = c.id
		 ORDER BY c.id, m.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		combos []model.TableCombination
		cur    *model.TableCombination
	)
	for rows.Next() {
		var (
			combo   model.TableCombination
			tableID string
		)
		if err := rows.Scan(&combo.ID, &combo.Active, &combo.CreatedAt, &combo.UpdatedAt, &tableID); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != combo.ID {
			combos = append(combos, combo)
			cur = &combos[len(combos)-1]
		}
		cur.TableIDs = append(cur.TableIDs, tableID)
	}
	return combos, rows.Err()
}
