package store

import (
	"context"
	"errors"
	"fmt"

	m "guest_list_services/src/models"

	"github.com/jackc/pgx/v5"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS guests (
							guest_id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
							first_name TEXT NOT NULL,
							last_name  TEXT NOT NULL,
							attending  BOOLEAN NOT NULL DEFAULT false,
							created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'::text),
							updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'::text)
						)`

type Postgres struct {
	connPool *m.PGPool
}

func NewPostgres(connPool *m.PGPool) *Postgres {
	return &Postgres{connPool: connPool}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.connPool.Pool.Exec(ctx, postgresSchema)
	if err != nil {
		return fmt.Errorf("create guests table: %w", err)
	}
	return nil
}

func (p *Postgres) ListGuests(ctx context.Context) ([]m.Guest, error) {
	query := `SELECT guest_id::text, first_name, last_name, attending
			  FROM guests
			  ORDER BY created_at, guest_id`

	rows, err := p.connPool.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query guests: %w", err)
	}
	defer rows.Close()

	guests := make([]m.Guest, 0)
	for rows.Next() {
		var guest m.Guest

		err := rows.Scan(&guest.ID, &guest.FirstName, &guest.LastName, &guest.Attending)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}

		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read guests: %w", err)
	}
	return guests, nil
}

func (p *Postgres) GetGuest(ctx context.Context, id string) (m.Guest, error) {
	var guest m.Guest

	query := `SELECT guest_id::text, first_name, last_name, attending
			  FROM guests
			  WHERE guest_id = $1`

	err := p.connPool.Pool.QueryRow(ctx, query, id).Scan(&guest.ID, &guest.FirstName, &guest.LastName, &guest.Attending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m.Guest{}, ErrNotFound
		}
		return m.Guest{}, fmt.Errorf("get guest %s: %w", id, err)
	}
	return guest, nil
}

func (p *Postgres) CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	query := `INSERT INTO guests (first_name, last_name, attending)
			  VALUES ($1, $2, $3)
			  RETURNING guest_id::text`

	err := p.connPool.Pool.QueryRow(ctx, query, guest.FirstName, guest.LastName, guest.Attending).Scan(&guest.ID)
	if err != nil {
		return m.Guest{}, fmt.Errorf("insert guest: %w", err)
	}
	return guest, nil
}

func (p *Postgres) UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	var updated m.Guest

	query := `UPDATE guests
			  SET first_name = $2, last_name = $3, attending = $4, updated_at = (now() AT TIME ZONE 'utc'::text)
			  WHERE guest_id = $1
			  RETURNING guest_id::text, first_name, last_name, attending`

	err := p.connPool.Pool.QueryRow(ctx, query, guest.ID, guest.FirstName, guest.LastName, guest.Attending).
		Scan(&updated.ID, &updated.FirstName, &updated.LastName, &updated.Attending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m.Guest{}, ErrNotFound
		}
		return m.Guest{}, fmt.Errorf("update guest %s: %w", guest.ID, err)
	}
	return updated, nil
}

func (p *Postgres) DeleteGuest(ctx context.Context, id string) error {
	query := `DELETE FROM guests
			  WHERE guest_id = $1`

	tag, err := p.connPool.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete guest %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Close() error {
	p.connPool.Close()
	return nil
}
