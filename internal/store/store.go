// Package store реализует key/value хранилище записей. Ключи имеют вид
// "<коллекция>_<ID владельца>", значения — JSON. Транзакций между ключами нет,
// все операции синхронные.
package store

import "context"

// KV интерфейс хранилища записей
type KV interface {
	// Get возвращает значение по ключу; второй результат false если ключа нет
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set записывает значение по ключу, перезаписывая существующее
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет ключ; отсутствие ключа не ошибка
	Delete(ctx context.Context, key string) error
	// Keys возвращает все ключи с данным префиксом в отсортированном порядке
	Keys(ctx context.Context, prefix string) ([]string, error)
}
