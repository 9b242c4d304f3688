package base

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// Repository базовый репозиторий поверх key/value хранилища
type Repository struct {
	kv     store.KV
	logger *zap.Logger
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(kv store.KV, logger *zap.Logger) *Repository {
	return &Repository{kv: kv, logger: logger}
}

// KV возвращает хранилище
func (r *Repository) KV() store.KV {
	return r.kv
}

// Logger возвращает логгер
func (r *Repository) Logger() *zap.Logger {
	return r.logger
}

// GetJSON читает и декодирует запись. Битый JSON не является ошибкой для
// вызывающего: запись логируется и возвращается нулевое значение типа —
// хранилище всегда "fail soft".
func GetJSON[T any](ctx context.Context, r *Repository, key string) (T, bool) {
	var zero T

	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Error("Failed to read record", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		r.logger.Warn("Corrupt record, using default",
			zap.String("key", key),
			zap.Error(err))
		return zero, false
	}

	return value, true
}

// SetJSON кодирует и записывает запись
func SetJSON[T any](ctx context.Context, r *Repository, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", key, err)
	}

	if err := r.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write record %s: %w", key, err)
	}

	return nil
}
