package mapper

import (
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/model"
)

type ApiKeyMapper struct{}

func NewApiKeyMapper() *ApiKeyMapper {
	return &ApiKeyMapper{}
}

func (m *ApiKeyMapper) ToEntity(k *model.ApiKey) *entity.ApiKey {
	if k == nil {
		return nil
	}
	return &entity.ApiKey{
		Id:        k.Id,
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt,
	}
}

func (m *ApiKeyMapper) ToModel(k *entity.ApiKey) *model.ApiKey {
	if k == nil {
		return nil
	}
	return &model.ApiKey{
		Id:        k.Id,
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt,
	}
}
