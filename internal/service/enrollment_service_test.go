package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	first, err := env.enrollments.Purchase(ctx, "u1", 15)
	require.NoError(t, err)
	second, err := env.enrollments.Purchase(ctx, "u1", 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{15}, env.enrollments.Purchased(ctx, "u1"))
	assert.True(t, env.enrollments.IsPurchased(ctx, "u1", 15))
	assert.False(t, env.enrollments.IsPurchased(ctx, "u1", 22))
}

func TestPurchaseUnknownCourse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.enrollments.Purchase(ctx, "u1", 9999)
	assert.Error(t, err)
	assert.Empty(t, env.enrollments.Purchased(ctx, "u1"))
}

func TestPurchaseAutoFollowsCommunity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.enrollments.Purchase(ctx, "u1", 15)
	require.NoError(t, err)

	// Курс 15 принадлежит автору 8: подписка создана вместе с курсом
	assert.True(t, env.community.IsInstructorFollowed(ctx, "u1", 8))
	assert.True(t, env.community.IsCourseFollowed(ctx, "u1", 15))
}

func TestPurchasedCoursesInvariantAfterAnySequence(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	// Перемешанная последовательность покупок и подписок
	_, err := env.enrollments.Purchase(ctx, "u1", 15)
	require.NoError(t, err)
	require.NoError(t, env.community.UnfollowCourse(ctx, "u1", 15))
	_, err = env.enrollments.Purchase(ctx, "u1", 22)
	require.NoError(t, err)
	require.NoError(t, env.community.FollowInstructor(ctx, "u1", 2))
	_, err = env.enrollments.Purchase(ctx, "u1", 5)
	require.NoError(t, err)

	// Sync-проход обязан вернуть все купленные курсы в отслеживаемые
	_, err = env.community.SyncPurchases(ctx, "u1", env.enrollments.Purchased(ctx, "u1"))
	require.NoError(t, err)

	for _, courseID := range env.enrollments.Purchased(ctx, "u1") {
		assert.True(t, env.community.IsCourseFollowed(ctx, "u1", courseID), "course %d not followed", courseID)
	}
}

func TestSeedDefaultsForRegularUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	purchased, err := env.enrollments.SeedDefaults(ctx, "demo_guy")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{15, 22, 23, 24, 25}, purchased)

	// Повторное сидирование возвращает сохранённое состояние
	again, err := env.enrollments.SeedDefaults(ctx, "demo_guy")
	require.NoError(t, err)
	assert.Equal(t, purchased, again)
}

func TestSeedDefaultsForFreshUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	for _, userID := range []string{"demo_new", "demo_sarah", "demo_alex"} {
		purchased, err := env.enrollments.SeedDefaults(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, purchased, "fresh user %s must start empty", userID)
	}

	// Но купленное "чистым" пользователем состояние сохраняется
	_, err := env.enrollments.Purchase(ctx, "demo_sarah", 15)
	require.NoError(t, err)
	purchased, err := env.enrollments.SeedDefaults(ctx, "demo_sarah")
	require.NoError(t, err)
	assert.Equal(t, []int{15}, purchased)
}

func TestPurchasedCoursesSkipsMissingCatalogEntries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.enrollments.Purchase(ctx, "u1", 15)
	require.NoError(t, err)

	// Курс, которого нет в каталоге, записан напрямую в хранилище
	require.NoError(t, env.kv.Set(ctx, "purchasedCourses_u1", []byte(`[15, 9999]`)))

	courses := env.enrollments.PurchasedCourses(ctx, "u1")
	require.Len(t, courses, 1)
	assert.Equal(t, 15, courses[0].ID)
}
