package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/catalog"
	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// IndexRepository кэш поискового индекса каталога. Глобальный, без владельца,
// всегда можно удалить и построить заново.
type IndexRepository struct {
	base *base.Repository
}

func NewIndexRepository(kv store.KV, logger *zap.Logger) *IndexRepository {
	return &IndexRepository{base: base.NewRepository(kv, logger)}
}

// Courses возвращает кэшированный индекс курсов; false если кэша нет
func (r *IndexRepository) Courses(ctx context.Context) ([]catalog.IndexedCourse, bool) {
	return base.GetJSON[[]catalog.IndexedCourse](ctx, r.base, KeyIndexedCourses)
}

// SetCourses сохраняет индекс курсов
func (r *IndexRepository) SetCourses(ctx context.Context, index []catalog.IndexedCourse) error {
	return base.SetJSON(ctx, r.base, KeyIndexedCourses, index)
}

// Instructors возвращает кэшированный индекс авторов; false если кэша нет
func (r *IndexRepository) Instructors(ctx context.Context) ([]catalog.IndexedInstructor, bool) {
	return base.GetJSON[[]catalog.IndexedInstructor](ctx, r.base, KeyIndexedInstructors)
}

// SetInstructors сохраняет индекс авторов
func (r *IndexRepository) SetInstructors(ctx context.Context, index []catalog.IndexedInstructor) error {
	return base.SetJSON(ctx, r.base, KeyIndexedInstructors, index)
}

// Clear удаляет оба кэша
func (r *IndexRepository) Clear(ctx context.Context) error {
	if err := r.base.KV().Delete(ctx, KeyIndexedCourses); err != nil {
		return err
	}
	return r.base.KV().Delete(ctx, KeyIndexedInstructors)
}
