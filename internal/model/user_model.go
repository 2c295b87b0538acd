package model

import "time"

type User struct {
	Id              string    `gorm:"type:varchar(255);primaryKey"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex"`
	FirstName       *string   `gorm:"type:varchar(255)"`
	LastName        *string   `gorm:"type:varchar(255)"`
	ProfileImageUrl *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
