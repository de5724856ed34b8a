package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

func init() {
	inventory.Register(config.InventoryDriverSQLite, func(path string) (inventory.Source, error) {
		return Open(path)
	})
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			hostname TEXT NOT NULL PRIMARY KEY,
			personality TEXT NOT NULL,
			body BLOB NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Get(logger.InventorySQLite).Debug("Opened inventory database", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Put(ctx context.Context, snap *topology.Snapshot) error {
	if snap.Host.Hostname == "" {
		return errors.New("snapshot has no hostname")
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (hostname, personality, body, updated_at)
		VALUES (?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT(hostname) DO UPDATE SET
			personality = excluded.personality,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, snap.Host.Hostname, snap.Host.Personality, body)
	return err
}

func (s *Store) Delete(ctx context.Context, hostname string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE hostname = ?
	`, hostname)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", hostname, inventory.ErrHostNotFound)
	}
	return nil
}

func (s *Store) Hosts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hostname FROM snapshots ORDER BY hostname
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hosts []string
	for rows.Next() {
		var hostname string
		if err := rows.Scan(&hostname); err != nil {
			return nil, err
		}
		hosts = append(hosts, hostname)
	}
	return hosts, rows.Err()
}

func (s *Store) Snapshot(ctx context.Context, hostname string) (*topology.Snapshot, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM snapshots WHERE hostname = ?
	`, hostname).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", hostname, inventory.ErrHostNotFound)
	}
	if err != nil {
		return nil, err
	}

	var snap topology.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", hostname, err)
	}
	return &snap, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
