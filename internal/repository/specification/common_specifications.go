package specification

import (
	"fmt"

	"gorm.io/gorm"
)

type ByID struct {
	ID int64
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}

// Newest orders by timestamp, breaking ties by id so rows written within
// the same clock tick keep their insertion order.
type Newest struct{}

func (Newest) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp DESC").Order("id DESC")
}
