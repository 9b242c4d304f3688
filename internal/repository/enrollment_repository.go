package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// EnrollmentRepository коллекция купленных курсов, по одной записи на пользователя
type EnrollmentRepository struct {
	base *base.Repository
}

func NewEnrollmentRepository(kv store.KV, logger *zap.Logger) *EnrollmentRepository {
	return &EnrollmentRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает ID купленных курсов пользователя; false если записи нет
func (r *EnrollmentRepository) Get(ctx context.Context, userID string) ([]int, bool) {
	return base.GetJSON[[]int](ctx, r.base, Key(CollectionPurchasedCourses, userID))
}

// Set сохраняет список купленных курсов пользователя
func (r *EnrollmentRepository) Set(ctx context.Context, userID string, courseIDs []int) error {
	if courseIDs == nil {
		courseIDs = []int{}
	}
	return base.SetJSON(ctx, r.base, Key(CollectionPurchasedCourses, userID), courseIDs)
}
