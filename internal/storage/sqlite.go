package storage

import (
	"database/sql"
	"fmt"

	"agencyscraper/internal/models"

	_ "modernc.org/sqlite"
)

var agenciesSchema = []string{
	`DROP TABLE IF EXISTS agencies`,
	`CREATE TABLE agencies (
	id          INTEGER PRIMARY KEY,
	agency_link TEXT NOT NULL,
	agency      TEXT NOT NULL,
	services    TEXT NOT NULL,
	address     TEXT NOT NULL,
	phone       TEXT NOT NULL,
	hours       TEXT NOT NULL
)`,
}

const insertAgency = `
INSERT INTO agencies (id, agency_link, agency, services, address, phone, hours)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// SQLiteSink stores records in an agencies table that is rebuilt on every write.
type SQLiteSink struct {
	path string
}

// NewSQLiteSink creates a sqlite sink writing to the database file at path.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path}
}

// Name implements Sink.
func (s *SQLiteSink) Name() string { return "sqlite" }

// Path implements Sink.
func (s *SQLiteSink) Path() string { return s.path }

// Write recreates the table and inserts every record in one transaction.
func (s *SQLiteSink) Write(records []models.Agency) error {
	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, ddl := range agenciesSchema {
		if _, err := tx.Exec(ddl); err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	stmt, err := tx.Prepare(insertAgency)
	if err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i+1, r.Link, r.Name, r.Services, r.Address, r.Phone, r.Hours); err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// ReadSQLite returns the stored records ordered by ID.
func ReadSQLite(path string) ([]models.Agency, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT agency_link, agency, services, address, phone, hours FROM agencies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agencies: %w", err)
	}
	defer rows.Close()

	var records []models.Agency

	for rows.Next() {
		var r models.Agency
		if err := rows.Scan(&r.Link, &r.Name, &r.Services, &r.Address, &r.Phone, &r.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan agency: %w", err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	return db, nil
}
