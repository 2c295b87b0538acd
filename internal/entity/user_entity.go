package entity

import "time"

// User is the locally stored copy of an OAuth profile. Id is the provider subject.
type User struct {
	Id              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageUrl string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
