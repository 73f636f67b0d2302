package probe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"splice/internal/media"
)

// Cache persists raw ffprobe payloads in SQLite, keyed by path plus file
// size and modification time so a changed file never serves stale
// metadata. A cache with an empty directory is a no-op passthrough.
type Cache struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *slog.Logger
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS probes (
	path     TEXT    NOT NULL,
	size     INTEGER NOT NULL,
	mtime    INTEGER NOT NULL,
	payload  BLOB    NOT NULL,
	cached_at INTEGER NOT NULL,
	PRIMARY KEY (path, size, mtime)
);
`

// OpenCache initializes or connects to the probe cache in dir. An empty
// dir disables caching entirely.
func OpenCache(dir string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		return &Cache{logger: logger}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "probes.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, errors.New("probe cache is locked by another process")
	}

	dbPath := filepath.Join(dir, "probes.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Cache{db: db, lock: lock, logger: logger}, nil
}

// Close releases the database and the directory lock.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var first error
	if c.db != nil {
		first = c.db.Close()
	}
	if c.lock != nil {
		if err := c.lock.Unlock(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Get returns the cached payload for the file's current size and mtime.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, bool) {
	if c.db == nil {
		return nil, false
	}
	size, mtime, err := statKey(path)
	if err != nil {
		return nil, false
	}
	var payload []byte
	err = c.db.QueryRowContext(ctx,
		`SELECT payload FROM probes WHERE path = ? AND size = ? AND mtime = ?`,
		path, size, mtime,
	).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false
	case err != nil:
		c.logger.Warn("probe cache read failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return payload, true
}

// Put stores the payload under the file's current size and mtime,
// replacing any previous entry for the same key.
func (c *Cache) Put(ctx context.Context, path string, payload []byte) error {
	if c.db == nil {
		return nil
	}
	size, mtime, err := statKey(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO probes (path, size, mtime, payload, cached_at) VALUES (?, ?, ?, ?, ?)`,
		path, size, mtime, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store probe for %s: %w", path, err)
	}
	return nil
}

// Prune drops entries cached before the cutoff.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if c.db == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM probes WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune probe cache: %w", err)
	}
	return res.RowsAffected()
}

// Inspector probes files through the cache, running the external binary
// only on a miss.
type Inspector struct {
	Binary string
	cache  *Cache
	logger *slog.Logger
}

// NewInspector pairs an ffprobe binary with a cache. A nil cache always
// misses.
func NewInspector(binary string, cache *Cache, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{Binary: binary, cache: cache, logger: logger}
}

// Inspect returns the probe result for path, served from cache when the
// file is unchanged since it was last probed.
func (i *Inspector) Inspect(ctx context.Context, path string) (Result, error) {
	if i.cache != nil {
		if payload, ok := i.cache.Get(ctx, path); ok {
			i.logger.Debug("probe cache hit", slog.String("path", path))
			return Parse(payload)
		}
	}

	result, err := Inspect(ctx, i.Binary, path)
	if err != nil {
		return Result{}, err
	}
	if i.cache != nil {
		if err := i.cache.Put(ctx, path, result.RawJSON()); err != nil {
			i.logger.Warn("probe cache write failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
	return result, nil
}

// Metadata probes path and converts the result into per-stream metadata.
func (i *Inspector) Metadata(ctx context.Context, path string) ([]*media.Meta, error) {
	result, err := i.Inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Metadata(), nil
}

func statKey(path string) (size int64, mtime int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, err
	}
	return info.Size(), info.ModTime().Unix(), nil
}
