package implementation

import (
	"context"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/mapper"
	"alkulous-relay/internal/model"
	"alkulous-relay/internal/repository/contract"
	"alkulous-relay/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.Message, error) {
	if limit <= 0 {
		return []*entity.Message{}, nil
	}

	var models []*model.Message
	query := specification.ApplyAll(r.db.WithContext(ctx),
		specification.Newest{},
		specification.Limit{N: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MessageRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Message{}).Error
}

func (r *MessageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
