package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peerloop/peerloop/internal/config"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// OpenStore открывает хранилище записей: Postgres если задан DB_DSN,
// иначе in-memory. Возвращает функцию закрытия ресурсов.
func OpenStore(ctx context.Context, cfg *config.Config, migrationsPath string, logger *zap.Logger) (store.KV, func(), error) {
	if cfg.DBDSN == "" {
		logger.Info("DB_DSN not set, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, migrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("Connected to Postgres store")
	return store.NewPostgres(pool), pool.Close, nil
}
