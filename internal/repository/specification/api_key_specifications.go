package specification

import "gorm.io/gorm"

type ByKey struct {
	Key string
}

func (s ByKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(`"key" = ?`, s.Key)
}
