package entity

import "time"

type ApiKey struct {
	Id        int64
	Key       string
	Name      string
	CreatedAt time.Time
}
