package inits

import (
	"context"
	"log"
	"time"

	m "guest_list_services/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreatePostgresPool(ctx context.Context, connString string) (*m.PGPool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Print(err)
		return nil, err
	}

	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Print(err)
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Print(err)
		return nil, err
	}

	return &m.PGPool{Pool: pool}, nil
}
