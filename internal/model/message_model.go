package model

import (
	"time"

	"gorm.io/datatypes"
)

type Message struct {
	Id        int64             `gorm:"primaryKey;autoIncrement"`
	Role      string            `gorm:"type:varchar(20);not null"`
	Content   string            `gorm:"type:text;not null"`
	Timestamp time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_messages_timestamp,sort:desc"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
}

func (Message) TableName() string {
	return "messages"
}
