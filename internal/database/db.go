package database

import (
	"database/sql"
	"fmt"

	"familywallet/internal/config"
)

// DB wraps sql.DB with dialect-aware query helpers
type DB struct {
	*sql.DB
	dialect Dialect
}

// New opens a database connection for the configured dialect and applies
// pending migrations.
func New(cfg *config.Config) (*DB, error) {
	dialect, err := dialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	dsn := dialect.DSN(DialectConfig{
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})

	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	db := &DB{DB: sqlDB, dialect: dialect}

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func dialectFor(dbType string) (Dialect, error) {
	switch dbType {
	case "", "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// Dialect returns the active dialect
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Query executes a query after dialect placeholder rewriting
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.dialect.RewriteQuery(query), args...)
}

// QueryRow executes a single-row query after dialect placeholder rewriting
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.dialect.RewriteQuery(query), args...)
}

// Exec executes a statement after dialect placeholder rewriting
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.dialect.RewriteQuery(query), args...)
}

// Begin starts a transaction wrapped with dialect-aware helpers
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.dialect}, nil
}
