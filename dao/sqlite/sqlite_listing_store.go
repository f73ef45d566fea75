package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"nestfinder/models"
)

// ListingStore persists listings in SQLite and serves them as search
// candidates.
type ListingStore struct {
	db *sql.DB
}

func OpenListingStore(path string) (*ListingStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &ListingStore{db: db}, nil
}

func (s *ListingStore) Close() error { return s.db.Close() }

func (s *ListingStore) EnsureSchema(ctx context.Context) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  neighborhood TEXT NOT NULL DEFAULT '',
  price INTEGER NOT NULL,
  bedrooms INTEGER NOT NULL,
  bathrooms REAL NOT NULL DEFAULT 0,
  sqft INTEGER,
  amenities_json TEXT NOT NULL DEFAULT '[]',
  pet_friendly INTEGER NOT NULL DEFAULT 0,
  parking_included INTEGER NOT NULL DEFAULT 0,
  laundry_type TEXT NOT NULL DEFAULT 'none',
  image_url TEXT NOT NULL DEFAULT '',
  source_url TEXT NOT NULL DEFAULT '',
  lat REAL,
  lng REAL
);
`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);`); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_listings_bedrooms ON listings(bedrooms);`); err != nil {
		return err
	}
	return nil
}

func (s *ListingStore) CountListings(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n)
	return n, err
}

// UpsertMany inserts or updates listings by id. Updated rows keep their
// first-insert position in candidate order.
func (s *ListingStore) UpsertMany(ctx context.Context, items []models.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO listings
(id, title, address, neighborhood, price, bedrooms, bathrooms, sqft, amenities_json,
 pet_friendly, parking_included, laundry_type, image_url, source_url, lat, lng)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title, address=excluded.address, neighborhood=excluded.neighborhood,
  price=excluded.price, bedrooms=excluded.bedrooms, bathrooms=excluded.bathrooms,
  sqft=excluded.sqft, amenities_json=excluded.amenities_json,
  pet_friendly=excluded.pet_friendly, parking_included=excluded.parking_included,
  laundry_type=excluded.laundry_type, image_url=excluded.image_url,
  source_url=excluded.source_url, lat=excluded.lat, lng=excluded.lng
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range items {
		if err := l.Normalize(); err != nil {
			return err
		}
		amenities, err := json.Marshal(l.Amenities)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			l.ID, l.Title, l.Address, l.Neighborhood, l.Price, l.Bedrooms, l.Bathrooms, l.Sqft,
			string(amenities), l.PetFriendly, l.ParkingIncluded, string(l.LaundryType),
			l.ImageURL, l.SourceURL, l.Lat, l.Lng,
		); err != nil {
			return fmt.Errorf("failed to upsert listing %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

// FetchCandidates returns listings priced within [budgetMin, budgetMax] and,
// when bedrooms is set, with exactly that many bedrooms. Results keep
// insertion order and are capped at limit.
func (s *ListingStore) FetchCandidates(ctx context.Context, budgetMin, budgetMax int, bedrooms *int, limit int) ([]models.Listing, error) {
	where := []string{"price >= ?", "price <= ?"}
	args := []any{budgetMin, budgetMax}
	if bedrooms != nil {
		where = append(where, "bedrooms = ?")
		args = append(args, *bedrooms)
	}
	args = append(args, limit)

	query := `
SELECT id, title, address, neighborhood, price, bedrooms, bathrooms, sqft, amenities_json,
       pet_friendly, parking_included, laundry_type, image_url, source_url, lat, lng
FROM listings
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY rowid
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		var (
			l             models.Listing
			sqft          sql.NullInt64
			lat, lng      sql.NullFloat64
			amenitiesJSON string
			laundry       string
		)
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Address, &l.Neighborhood, &l.Price, &l.Bedrooms, &l.Bathrooms, &sqft,
			&amenitiesJSON, &l.PetFriendly, &l.ParkingIncluded, &laundry, &l.ImageURL, &l.SourceURL, &lat, &lng,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(amenitiesJSON), &l.Amenities); err != nil {
			return nil, fmt.Errorf("listing %s has malformed amenities: %w", l.ID, err)
		}
		l.LaundryType = models.LaundryType(laundry)
		if sqft.Valid {
			v := int(sqft.Int64)
			l.Sqft = &v
		}
		if lat.Valid && lng.Valid {
			la, ln := lat.Float64, lng.Float64
			l.Lat, l.Lng = &la, &ln
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
