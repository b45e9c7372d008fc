// ABOUTME: Persistent vector index backed by SQLite, keyed by collection name
// ABOUTME: Vectors stored as little-endian float64 BLOBs, brute-force cosine search
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

// Index is an append-only vector index stored in a SQLite collection.
// Implements storage.VectorIndex.
type Index struct {
	db         *DB
	collection string
	dimension  int
}

// NewIndex opens (or creates) the named collection inside db
func NewIndex(db *DB, collection string, dimension int) (*Index, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &Index{
		db:         db,
		collection: collection,
		dimension:  dimension,
	}, nil
}

// Collection returns the collection name
func (idx *Index) Collection() string {
	return idx.collection
}

// Dimension returns the fixed vector dimension of the index
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Count returns the number of records in the collection
func (idx *Index) Count() (int, error) {
	var count int
	err := idx.db.conn.QueryRow(
		"SELECT COUNT(*) FROM records WHERE collection = ?", idx.collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// Add appends records inside a single transaction. Dimension and
// duplicate-id violations roll the whole batch back, so the index never
// holds a partial write. The UNIQUE(collection, id) constraint backs
// the duplicate check against concurrent writers.
func (idx *Index) Add(records []models.Record) error {
	for _, rec := range records {
		if len(rec.Vector) != idx.dimension {
			return fmt.Errorf("%w: record %q has dimension %d, index expects %d",
				storage.ErrDimensionMismatch, rec.ID, len(rec.Vector), idx.dimension)
		}
	}

	tx, err := idx.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		metaJSON, err := encodeMetadata(rec.Metadata)
		if err != nil {
			return fmt.Errorf("record %q: %w", rec.ID, err)
		}

		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err = tx.Exec(`
			INSERT INTO records (collection, id, text, vector, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, idx.collection, rec.ID, rec.Text, vectorToBlob(rec.Vector), metaJSON, createdAt)

		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %q", storage.ErrDuplicateID, rec.ID)
			}
			return fmt.Errorf("failed to insert record %q: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Query returns up to k records matching the filter, ordered by
// descending cosine similarity with insertion order breaking ties.
func (idx *Index) Query(vector []float64, k int, filter map[string]any) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d",
			storage.ErrDimensionMismatch, len(vector), idx.dimension)
	}

	rows, err := idx.db.conn.Query(`
		SELECT id, text, vector, metadata, created_at
		FROM records
		WHERE collection = ?
		ORDER BY seq ASC
	`, idx.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		var (
			rec      models.Record
			blob     []byte
			metaJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Text, &blob, &metaJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		if metaJSON.Valid && metaJSON.String != "" {
			if err := json.Unmarshal([]byte(metaJSON.String), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("record %q: corrupt metadata: %w", rec.ID, err)
			}
		}

		if !storage.MatchesFilter(rec.Metadata, filter) {
			continue
		}

		rec.Vector = blobToVector(blob)
		results = append(results, models.SearchResult{
			Record: rec,
			Score:  storage.CosineSimilarity(vector, rec.Vector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive in seq order; the stable sort keeps earlier records
	// first on equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// All returns every record in the collection in insertion order,
// without vectors loaded. Used by the inspect surface.
func (idx *Index) All() ([]models.Record, error) {
	rows, err := idx.db.conn.Query(`
		SELECT id, text, metadata, created_at
		FROM records
		WHERE collection = ?
		ORDER BY seq ASC
	`, idx.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.Record
	for rows.Next() {
		var (
			rec      models.Record
			metaJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Text, &metaJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if metaJSON.Valid && metaJSON.String != "" {
			if err := json.Unmarshal([]byte(metaJSON.String), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("record %q: corrupt metadata: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// encodeMetadata validates the scalar-only restriction and serializes
func encodeMetadata(metadata map[string]any) (sql.NullString, error) {
	if len(metadata) == 0 {
		return sql.NullString{}, nil
	}
	for key, v := range metadata {
		switch v.(type) {
		case string, int, int32, int64, bool:
		default:
			return sql.NullString{}, fmt.Errorf("metadata key %q has unsupported type %T", key, v)
		}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
