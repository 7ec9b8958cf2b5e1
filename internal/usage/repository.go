package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/database"
)

// Entry is one recorded request.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Endpoint     string    `json:"endpoint"`
	Query        string    `json:"query,omitempty"`
	DomainFilter string    `json:"domain_filter,omitempty"`
	SearchType   string    `json:"search_type,omitempty"`
	TotalMatches int       `json:"total_matches"`
	BestScore    int       `json:"best_score"`
	DurationMs   int64     `json:"duration_ms"`
}

// Filter narrows a usage listing.
type Filter struct {
	Endpoint string
	Since    time.Time
	Limit    int
	Offset   int
}

// ListResult is one page of usage entries with the unpaginated total.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Repository stores and queries usage entries.
type Repository interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository implements Repository on the embedded database.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a usage repository over db.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record inserts one usage entry. A missing ID or timestamp is filled in.
func (r *SQLiteRepository) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_logs
			(id, timestamp, endpoint, query, domain_filter, search_type,
			 total_matches, best_score, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Endpoint, entry.Query,
		entry.DomainFilter, entry.SearchType, entry.TotalMatches,
		entry.BestScore, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("recording usage entry: %w", err)
	}
	return nil
}

// List returns entries newest first, filtered and paginated.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	where := "WHERE 1=1"
	args := []any{}
	if filter.Endpoint != "" {
		where += " AND endpoint = ?"
		args = append(args, filter.Endpoint)
	}
	if !filter.Since.IsZero() {
		where += " AND timestamp >= ?"
		args = append(args, filter.Since)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM usage_logs "+where, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting usage entries: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, endpoint, query, domain_filter, search_type,
		       total_matches, best_score, duration_ms
		FROM usage_logs `+where+`
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?`,
		append(args, limit, filter.Offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing usage entries: %w", err)
	}
	defer rows.Close()

	result := &ListResult{Total: total, Entries: []Entry{}}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Endpoint, &e.Query, &e.DomainFilter,
			&e.SearchType, &e.TotalMatches, &e.BestScore, &e.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("scanning usage entry: %w", err)
		}
		result.Entries = append(result.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage entries: %w", err)
	}
	return result, nil
}
