package database

import "testing"

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT * FROM children",
			expected: "SELECT * FROM children",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM children WHERE id = ?",
			expected: "SELECT * FROM children WHERE id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO prizes (name, price) VALUES (?, ?)",
			expected: "INSERT INTO prizes (name, price) VALUES ($1, $2)",
		},
		{
			name:     "placeholders in update",
			query:    "UPDATE children SET name = ?, current = ? WHERE id = ?",
			expected: "UPDATE children SET name = $1, current = $2 WHERE id = $3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewritePlaceholdersToNumbered(tt.query)
			if got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestDialectRewriteQuery(t *testing.T) {
	query := "SELECT value FROM settings WHERE name = ?"

	sqlite := NewSQLiteDialect()
	if got := sqlite.RewriteQuery(query); got != query {
		t.Errorf("sqlite should not rewrite placeholders, got %q", got)
	}

	mysql := NewMySQLDialect()
	if got := mysql.RewriteQuery(query); got != query {
		t.Errorf("mysql should not rewrite placeholders, got %q", got)
	}

	postgres := NewPostgresDialect()
	want := "SELECT value FROM settings WHERE name = $1"
	if got := postgres.RewriteQuery(query); got != want {
		t.Errorf("postgres rewrite = %q, want %q", got, want)
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType  string
		driver  string
		wantErr bool
	}{
		{dbType: "", driver: "sqlite3"},
		{dbType: "sqlite", driver: "sqlite3"},
		{dbType: "sqlite3", driver: "sqlite3"},
		{dbType: "postgres", driver: "postgres"},
		{dbType: "postgresql", driver: "postgres"},
		{dbType: "mysql", driver: "mysql"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		d, err := dialectFor(tt.dbType)
		if tt.wantErr {
			if err == nil {
				t.Errorf("dialectFor(%q) expected error, got nil", tt.dbType)
			}
			continue
		}
		if err != nil {
			t.Errorf("dialectFor(%q) unexpected error: %v", tt.dbType, err)
			continue
		}
		if d.DriverName() != tt.driver {
			t.Errorf("dialectFor(%q).DriverName() = %q, want %q", tt.dbType, d.DriverName(), tt.driver)
		}
	}
}
