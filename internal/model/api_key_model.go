package model

import "time"

type ApiKey struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
