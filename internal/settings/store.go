// Package settings persists user preferences as flat key/value pairs in SQLite.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"slangclip/internal/domain"
)

const (
	KeyAPIKey    = "api_key"
	KeyProvider  = "provider"
	KeyModel     = "model"
	KeyTone      = "tone"
	KeyAutoPaste = "auto_paste"
	KeyHistory   = "history"
)

// Keys lists the stored keys in display order.
func Keys() []string {
	return []string{KeyAPIKey, KeyProvider, KeyModel, KeyTone, KeyAutoPaste, KeyHistory}
}

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown settings key")

// Store implements ports.SettingsStore on a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("make settings dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key. Missing keys report ok=false.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set writes the raw value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if !knownKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Load reads every key, applying defaults for missing or unreadable values.
func (s *Store) Load(ctx context.Context) (domain.Settings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return domain.Settings{}, fmt.Errorf("scan settings: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	out := domain.DefaultSettings()
	out.APIKey = values[KeyAPIKey]
	out.Model = values[KeyModel]
	if v, ok := values[KeyProvider]; ok {
		out.Provider = domain.Provider(v)
	}
	if v, ok := values[KeyTone]; ok {
		out.Tone = domain.Tone(v)
	}
	if v, ok := values[KeyAutoPaste]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			out.AutoPaste = b
		}
	}
	if v, ok := values[KeyHistory]; ok && v != "" {
		var history []domain.HistoryItem
		if err := json.Unmarshal([]byte(v), &history); err == nil {
			out.History = history
		}
	}
	return out.Normalize(), nil
}

// Save writes every key in one transaction.
func (s *Store) Save(ctx context.Context, settings domain.Settings) error {
	settings = settings.Normalize()
	history, err := json.Marshal(settings.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	values := map[string]string{
		KeyAPIKey:    settings.APIKey,
		KeyProvider:  string(settings.Provider),
		KeyModel:     settings.Model,
		KeyTone:      string(settings.Tone),
		KeyAutoPaste: strconv.FormatBool(settings.AutoPaste),
		KeyHistory:   string(history),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, key := range Keys() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, values[key]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func knownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
