package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres хранилище записей поверх таблицы records
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM records WHERE key = $1`

	var value []byte
	err := p.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get record: %w", err)
	}

	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO records (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`

	_, err := p.pool.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("set record: %w", err)
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE key = $1`

	_, err := p.pool.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	return nil
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	// left/length вместо LIKE: в префиксах встречается "_", для LIKE это wildcard
	query := `SELECT key FROM records WHERE left(key, length($1)) = $1 ORDER BY key`

	rows, err := p.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list record keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan record key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
