package dto

import "time"

type CreateApiKeyRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type ApiKeyResponse struct {
	Id        int64     `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
