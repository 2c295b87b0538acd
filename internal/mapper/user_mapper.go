package mapper

import (
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:              u.Id,
		Email:           deref(u.Email),
		FirstName:       deref(u.FirstName),
		LastName:        deref(u.LastName),
		ProfileImageUrl: deref(u.ProfileImageUrl),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ToModel maps empty profile fields to NULL.
func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:              u.Id,
		Email:           nullable(u.Email),
		FirstName:       nullable(u.FirstName),
		LastName:        nullable(u.LastName),
		ProfileImageUrl: nullable(u.ProfileImageUrl),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
