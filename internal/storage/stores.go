package storage

import (
	"github.com/jstrand/remind/internal/storage/postgres"
	"github.com/jstrand/remind/internal/storage/sqlite"
)

// NewSQLiteStore creates a SQLite-backed provider (the default backend)
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL-backed provider
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an embedded password
func HasEmbeddedCredentials(connStr string) bool {
	return postgres.HasEmbeddedCredentials(connStr)
}
