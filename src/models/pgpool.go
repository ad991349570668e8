package models

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGPool struct {
	Pool *pgxpool.Pool
}

func (connPool *PGPool) Close() {
	if connPool == nil || connPool.Pool == nil {
		return
	}
	connPool.Pool.Close()
}
