package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RunMigrations applies any .sql files under the migrations directory that
// have not been executed yet. Files are applied in lexical order and recorded
// in a tracking table. A dialect-specific subdirectory is preferred when it
// exists, falling back to the root migrations directory.
func (db *DB) RunMigrations(migrationsPath string) error {
	if _, err := db.DB.Exec(db.dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := filepath.Join(migrationsPath, db.dialect.MigrationsSubdir())
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = migrationsPath
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		filename := filepath.Base(file)

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE filename = ?", filename).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", filename, err)
		}
		if count > 0 {
			continue
		}

		contents, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := db.DB.Exec(string(contents)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", filename, err)
		}

		if _, err := db.Exec("INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
	}

	return nil
}
