package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	m "guest_list_services/src/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS guests (
	guest_id   TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	attending  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLite keeps guests in a local database file. Ids are generated here since
// SQLite has no uuid default.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. ":memory:" works for tests.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// One connection: a second one would see a different in-memory database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create guests table: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) ListGuests(ctx context.Context) ([]m.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT guest_id, first_name, last_name, attending
		FROM guests
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query guests: %w", err)
	}
	defer rows.Close()

	guests := make([]m.Guest, 0)
	for rows.Next() {
		var guest m.Guest
		if err := rows.Scan(&guest.ID, &guest.FirstName, &guest.LastName, &guest.Attending); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read guests: %w", err)
	}
	return guests, nil
}

func (s *SQLite) GetGuest(ctx context.Context, id string) (m.Guest, error) {
	var guest m.Guest

	row := s.db.QueryRowContext(ctx, `
		SELECT guest_id, first_name, last_name, attending
		FROM guests
		WHERE guest_id = ?
	`, id)

	err := row.Scan(&guest.ID, &guest.FirstName, &guest.LastName, &guest.Attending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m.Guest{}, ErrNotFound
		}
		return m.Guest{}, fmt.Errorf("get guest %s: %w", id, err)
	}
	return guest, nil
}

func (s *SQLite) CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	guest.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guests (guest_id, first_name, last_name, attending)
		VALUES (?, ?, ?, ?)
	`, guest.ID, guest.FirstName, guest.LastName, guest.Attending)
	if err != nil {
		return m.Guest{}, fmt.Errorf("insert guest: %w", err)
	}
	return guest, nil
}

func (s *SQLite) UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE guests
		SET first_name = ?, last_name = ?, attending = ?, updated_at = CURRENT_TIMESTAMP
		WHERE guest_id = ?
	`, guest.FirstName, guest.LastName, guest.Attending, guest.ID)
	if err != nil {
		return m.Guest{}, fmt.Errorf("update guest %s: %w", guest.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return m.Guest{}, fmt.Errorf("update guest %s: %w", guest.ID, err)
	}
	if affected == 0 {
		return m.Guest{}, ErrNotFound
	}
	return guest, nil
}

func (s *SQLite) DeleteGuest(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM guests WHERE guest_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete guest %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete guest %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
