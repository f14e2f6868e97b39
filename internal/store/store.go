// Package store persists the user's platform profile, usage counts, and
// the resolution cache in a local sqlite database. A failed open is
// recoverable: callers fall back to an in-memory store for the session.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"whereto/internal/media"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store wraps the sqlite database holding all durable local state.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens a throwaway in-memory store, used when the durable
// store cannot be opened.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		);
	`); err != nil {
		return err
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var exists int
		checkErr := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name = ? LIMIT 1;`, entry.Name()).Scan(&exists)
		if checkErr == nil {
			continue
		}
		if !errors.Is(checkErr, sql.ErrNoRows) {
			return checkErr
		}

		sqlBytes, readErr := migrationFS.ReadFile("migrations/" + entry.Name())
		if readErr != nil {
			return readErr
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), execErr)
		}
		if _, insertErr := db.Exec(
			`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?);`,
			entry.Name(),
			time.Now().UTC().Format(time.RFC3339),
		); insertErr != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), insertErr)
		}
	}
	return nil
}

// Profile loads the user's preferred platforms and usage counts.
// An empty database yields an empty profile, not an error.
func (s *Store) Profile(ctx context.Context) (media.Profile, error) {
	profile := media.Profile{UsageCounts: map[string]int{}}

	var preferredJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT preferred_platforms FROM profile WHERE id = 1;`).Scan(&preferredJSON)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return profile, fmt.Errorf("reading profile: %w", err)
	}
	if preferredJSON != "" {
		if err := json.Unmarshal([]byte(preferredJSON), &profile.PreferredPlatforms); err != nil {
			return profile, fmt.Errorf("decoding preferred platforms: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT platform_id, launch_count FROM platform_usage;`)
	if err != nil {
		return profile, fmt.Errorf("reading usage counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return profile, fmt.Errorf("scanning usage row: %w", err)
		}
		profile.UsageCounts[id] = count
	}
	return profile, rows.Err()
}

// SetPreferredPlatforms replaces the ordered preferred-platform list.
func (s *Store) SetPreferredPlatforms(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding preferred platforms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile (id, preferred_platforms, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			preferred_platforms = excluded.preferred_platforms,
			updated_at = excluded.updated_at;
	`, string(encoded), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving preferred platforms: %w", err)
	}
	return nil
}

// RecordUsage increments the launch count for a platform.
func (s *Store) RecordUsage(ctx context.Context, platformID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO platform_usage (platform_id, launch_count, last_used_at)
		VALUES (?, 1, ?)
		ON CONFLICT(platform_id) DO UPDATE SET
			launch_count = launch_count + 1,
			last_used_at = excluded.last_used_at;
	`, platformID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording usage for %s: %w", platformID, err)
	}
	return nil
}

// CacheGet returns the cached resolution for key if one exists and is
// within ttl. Stale rows are deleted on read; there is no sweeper.
func (s *Store) CacheGet(ctx context.Context, key string, ttl time.Duration) (*media.ResolutionResult, bool) {
	var payload, cachedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, cached_at FROM resolution_cache WHERE cache_key = ?;`, key).
		Scan(&payload, &cachedAt)
	if err != nil {
		return nil, false
	}

	at, err := time.Parse(time.RFC3339, cachedAt)
	if err != nil || time.Since(at) > ttl {
		s.db.ExecContext(ctx, `DELETE FROM resolution_cache WHERE cache_key = ?;`, key)
		return nil, false
	}

	var result media.ResolutionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.db.ExecContext(ctx, `DELETE FROM resolution_cache WHERE cache_key = ?;`, key)
		return nil, false
	}
	return &result, true
}

// CachePut stores a resolution result under key with a fresh timestamp.
func (s *Store) CachePut(ctx context.Context, key string, result *media.ResolutionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding cached result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resolution_cache (cache_key, payload, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			payload = excluded.payload,
			cached_at = excluded.cached_at;
	`, key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("caching result for %s: %w", key, err)
	}
	return nil
}

// CacheClear drops every cached resolution.
func (s *Store) CacheClear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM resolution_cache;`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
