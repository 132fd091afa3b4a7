package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDatabase(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	var err error
	DB, err = sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := DB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Printf("Warning: failed to enable foreign keys: %v", err)
	}

	if err = createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func createTables() error {
	schema := `
    CREATE TABLE IF NOT EXISTS accounts (
        id TEXT PRIMARY KEY,
        username TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS books (
        id TEXT PRIMARY KEY,
        google_books_id TEXT UNIQUE,
        title TEXT NOT NULL,
        authors TEXT,
        thumbnail TEXT,
        description TEXT,
        categories TEXT,
        status TEXT DEFAULT 'reading',
        date_added TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        date_finished TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_books_status ON books(status);
    CREATE INDEX IF NOT EXISTS idx_books_google_id ON books(google_books_id);
    `

	if _, err := DB.Exec(schema); err != nil {
		return err
	}

	// Additive migrations for databases created before these columns existed.
	migrations := []struct {
		column string
		ddl    string
	}{
		{"page_count", `ALTER TABLE books ADD COLUMN page_count INTEGER;`},
		{"published_year", `ALTER TABLE books ADD COLUMN published_year TEXT;`},
		{"language", `ALTER TABLE books ADD COLUMN language TEXT;`},
		{"average_rating", `ALTER TABLE books ADD COLUMN average_rating REAL;`},
	}
	for _, m := range migrations {
		if err := ensureBookColumn(m.column, m.ddl); err != nil {
			return err
		}
	}
	return nil
}

func ensureBookColumn(column, ddl string) error {
	rows, err := DB.Query(`PRAGMA table_info(books);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	found := false
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			found = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !found {
		if _, err := DB.Exec(ddl); err != nil {
			log.Printf("Warning: adding %s column failed: %v", column, err)
		}
	}
	return nil
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
