package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// SQLLocationRegistry is a Postgres-backed LocationRegistry.
type SQLLocationRegistry struct {
	DB *sql.DB
}

func NewSQLLocationRegistry(db *sql.DB) *SQLLocationRegistry {
	return &SQLLocationRegistry{DB: db}
}

func (r *SQLLocationRegistry) Lookup(ctx context.Context, id string) (domain.Coordinates, error) {
	if r.DB == nil {
		return domain.Coordinates{}, errors.New("location registry: db is nil")
	}

	q := `
	SELECT lat, lon
	FROM locations
	WHERE id = $1;
	`

	var lat, lon float64
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, &domain.UnknownLocationError{ID: id}
	}
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("location registry: query locations table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func (r *SQLLocationRegistry) AllIDs(ctx context.Context) ([]string, error) {
	if r.DB == nil {
		return nil, errors.New("location registry: db is nil")
	}

	q := `
	SELECT id
	FROM locations
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("location registry: query locations table: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("location registry: scan rows: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("location registry: row iteration: %w", err)
	}

	return ids, nil
}

// InitSchema creates the locations table if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init schema: create locations table: %w", err)
	}

	return nil
}

// Seed upserts the given coordinate table into the locations table.
func Seed(ctx context.Context, db *sql.DB, coords map[string]domain.Coordinates) error {
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO locations (id, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("seed locations: db prepare: %w", err)
	}
	defer stmt.Close()

	for id, c := range coords {
		if _, err := stmt.ExecContext(ctx, id, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("seed locations id=%q: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations commit: %w", err)
	}

	return nil
}
