package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// StatsRepository сводки преподавателей, по одной записи на преподавателя
type StatsRepository struct {
	base *base.Repository
}

func NewStatsRepository(kv store.KV, logger *zap.Logger) *StatsRepository {
	return &StatsRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает сводку преподавателя или пустую, если записи нет или она бита
func (r *StatsRepository) Get(ctx context.Context, teacherID string) *model.TeacherStats {
	stats, ok := base.GetJSON[*model.TeacherStats](ctx, r.base, Key(CollectionTeacherStats, teacherID))
	if !ok || stats == nil {
		return model.NewTeacherStats()
	}
	// Слайсы после декодирования могут быть nil
	if stats.ActiveStudents == nil {
		stats.ActiveStudents = []model.ActiveStudent{}
	}
	if stats.CompletedStudents == nil {
		stats.CompletedStudents = []string{}
	}
	if stats.EarningsHistory == nil {
		stats.EarningsHistory = []model.Earning{}
	}
	return stats
}

// Set сохраняет сводку преподавателя
func (r *StatsRepository) Set(ctx context.Context, teacherID string, stats *model.TeacherStats) error {
	return base.SetJSON(ctx, r.base, Key(CollectionTeacherStats, teacherID), stats)
}
