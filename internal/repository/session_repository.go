package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// StudentSessionRepository сессии с точки зрения студента — каноническая копия
type StudentSessionRepository struct {
	base *base.Repository
}

func NewStudentSessionRepository(kv store.KV, logger *zap.Logger) *StudentSessionRepository {
	return &StudentSessionRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает сессии студента; false если записи нет
func (r *StudentSessionRepository) Get(ctx context.Context, userID string) ([]model.Session, bool) {
	return base.GetJSON[[]model.Session](ctx, r.base, Key(CollectionScheduledSessions, userID))
}

// Set сохраняет сессии студента
func (r *StudentSessionRepository) Set(ctx context.Context, userID string, sessions []model.Session) error {
	if sessions == nil {
		sessions = []model.Session{}
	}
	return base.SetJSON(ctx, r.base, Key(CollectionScheduledSessions, userID), sessions)
}

// Owners возвращает ID всех пользователей, у которых есть коллекция сессий.
// Нужно reconciliation-проходу для поиска незеркалированных сессий.
func (r *StudentSessionRepository) Owners(ctx context.Context) ([]string, error) {
	keys, err := r.base.KV().Keys(ctx, CollectionScheduledSessions+"_")
	if err != nil {
		return nil, err
	}

	owners := make([]string, 0, len(keys))
	for _, key := range keys {
		if owner := OwnerFromKey(CollectionScheduledSessions, key); owner != "" {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

// TeacherSessionRepository зеркальные записи сессий на стороне преподавателя
type TeacherSessionRepository struct {
	base *base.Repository
}

func NewTeacherSessionRepository(kv store.KV, logger *zap.Logger) *TeacherSessionRepository {
	return &TeacherSessionRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает зеркальные сессии преподавателя; false если записи нет
func (r *TeacherSessionRepository) Get(ctx context.Context, teacherID string) ([]model.Session, bool) {
	return base.GetJSON[[]model.Session](ctx, r.base, Key(CollectionTeacherSessions, teacherID))
}

// Set сохраняет зеркальные сессии преподавателя
func (r *TeacherSessionRepository) Set(ctx context.Context, teacherID string, sessions []model.Session) error {
	if sessions == nil {
		sessions = []model.Session{}
	}
	return base.SetJSON(ctx, r.base, Key(CollectionTeacherSessions, teacherID), sessions)
}
