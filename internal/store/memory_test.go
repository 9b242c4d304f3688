package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	_, ok, err := kv.Get(ctx, "purchasedCourses_u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "purchasedCourses_u1", []byte(`[15]`)))

	value, ok, err := kv.Get(ctx, "purchasedCourses_u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[15]`), value)

	// Мутация возвращённого значения не должна менять хранимое
	value[0] = 'X'
	value2, _, err := kv.Get(ctx, "purchasedCourses_u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[15]`), value2)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	require.NoError(t, kv.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Удаление отсутствующего ключа не ошибка
	require.NoError(t, kv.Delete(ctx, "missing"))
}

func TestMemoryKeysPrefix(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	require.NoError(t, kv.Set(ctx, "scheduledSessions_u2", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "scheduledSessions_u1", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "teacherSessions_u1", []byte(`[]`)))

	keys, err := kv.Keys(ctx, "scheduledSessions_")
	require.NoError(t, err)
	assert.Equal(t, []string{"scheduledSessions_u1", "scheduledSessions_u2"}, keys)
}
