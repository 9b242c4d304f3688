package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// NotificationRepository очередь уведомлений о переносах на стороне преподавателя
type NotificationRepository struct {
	base *base.Repository
}

func NewNotificationRepository(kv store.KV, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает уведомления преподавателя; false если записи нет
func (r *NotificationRepository) Get(ctx context.Context, teacherID string) ([]model.RescheduleNotification, bool) {
	return base.GetJSON[[]model.RescheduleNotification](ctx, r.base, Key(CollectionRescheduleNotifications, teacherID))
}

// Set сохраняет уведомления преподавателя
func (r *NotificationRepository) Set(ctx context.Context, teacherID string, notifications []model.RescheduleNotification) error {
	if notifications == nil {
		notifications = []model.RescheduleNotification{}
	}
	return base.SetJSON(ctx, r.base, Key(CollectionRescheduleNotifications, teacherID), notifications)
}

// Append добавляет уведомление в конец очереди преподавателя
func (r *NotificationRepository) Append(ctx context.Context, teacherID string, notification model.RescheduleNotification) error {
	list, _ := r.Get(ctx, teacherID)
	return r.Set(ctx, teacherID, append(list, notification))
}
