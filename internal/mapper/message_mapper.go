package mapper

import (
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		Role:      entity.MessageRole(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Metadata:  map[string]interface{}(msg.Metadata),
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	var metadata datatypes.JSONMap
	if len(msg.Metadata) > 0 {
		metadata = datatypes.JSONMap(msg.Metadata)
	}
	return &model.Message{
		Id:        msg.Id,
		Role:      string(msg.Role),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Metadata:  metadata,
	}
}
