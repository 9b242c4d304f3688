package repository

import (
	"context"

	"github.com/peerloop/peerloop/internal/model"
	"github.com/peerloop/peerloop/internal/repository/base"
	"github.com/peerloop/peerloop/internal/store"
	"go.uber.org/zap"
)

// FollowRepository подписки пользователя на сообщества авторов
type FollowRepository struct {
	base *base.Repository
}

func NewFollowRepository(kv store.KV, logger *zap.Logger) *FollowRepository {
	return &FollowRepository{base: base.NewRepository(kv, logger)}
}

// Get возвращает подписки пользователя; false если записи нет
func (r *FollowRepository) Get(ctx context.Context, userID string) ([]model.CommunityFollow, bool) {
	return base.GetJSON[[]model.CommunityFollow](ctx, r.base, Key(CollectionFollowedCommunities, userID))
}

// Set сохраняет подписки пользователя
func (r *FollowRepository) Set(ctx context.Context, userID string, follows []model.CommunityFollow) error {
	if follows == nil {
		follows = []model.CommunityFollow{}
	}
	return base.SetJSON(ctx, r.base, Key(CollectionFollowedCommunities, userID), follows)
}

// Delete удаляет запись подписок пользователя целиком
func (r *FollowRepository) Delete(ctx context.Context, userID string) error {
	return r.base.KV().Delete(ctx, Key(CollectionFollowedCommunities, userID))
}
