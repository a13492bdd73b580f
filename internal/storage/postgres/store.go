package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/jstrand/remind/internal/constants"
	"github.com/jstrand/remind/internal/logger"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	// Ensure search_path is set to the app schema in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		// Assume DSN format
		if !hasDSNParam(s.connStr, "search_path") {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasDSNParam returns true if the DSN-style connection string contains
// the given parameter key (case-insensitive).
func hasDSNParam(connStr, param string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], param) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that a connection string is a valid
// PostgreSQL connection string (URI or DSN) and does not embed a
// password. Credentials belong in the environment, .pgpass, or the OS
// keyring.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if HasEmbeddedCredentials(connStr) {
		return false, ErrEmbeddedCredentials
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether the connection string carries a
// password, in either URI or DSN form.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}
	return hasDSNParam(connStr, "password")
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			class      TEXT NOT NULL DEFAULT '',
			due_date   TEXT NOT NULL,
			trackable  BOOLEAN NOT NULL DEFAULT FALSE,
			completed  BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reminders_due_date ON reminders(due_date);

		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (s *Store) GetConfigPath() string {
	return s.connStr
}
