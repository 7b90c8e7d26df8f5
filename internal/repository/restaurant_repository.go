package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Evang2/restaurant-app/internal/model"
)

// RestaurantRepo provides read-only access to the restaurant catalog.
// The reservation flow only ever reads restaurants; catalog rows are
// seeded and managed out of band.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// GetByID fetches a single restaurant. It returns ErrRestaurantNotFound
// when no row with the given ID exists.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	const q = `SELECT restaurant_id, name, location, description
	           FROM restaurants WHERE restaurant_id = ? LIMIT 1`
	var m model.Restaurant
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.Location, &m.Description)
	if err == sql.ErrNoRows {
		return model.Restaurant{}, ErrRestaurantNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return m, nil
}

// ListAll returns the full catalog ordered by name. An empty catalog
// yields an empty slice, never nil, so the handler always serialises a
// JSON array.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT restaurant_id, name, location, description
	           FROM restaurants ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var m model.Restaurant
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns restaurants whose name or location contains the query
// as a case-insensitive substring, ordered by name.
func (r *RestaurantRepo) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	like := "%" + strings.ToLower(query) + "%"
	const q = `SELECT restaurant_id, name, location, description
	           FROM restaurants
	           WHERE LOWER(name) LIKE ? OR LOWER(location) LIKE ?
	           ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var m model.Restaurant
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
