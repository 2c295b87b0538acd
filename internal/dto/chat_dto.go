package dto

import "time"

// UseOllama is accepted for compatibility but does not influence backend
// selection; Ollama is picked whenever it is configured.
type SendChatRequest struct {
	Message       string `json:"message" validate:"required"`
	UseOllama     bool   `json:"useOllama"`
	UseLocalBrain bool   `json:"useLocalBrain"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type MessageResponse struct {
	Id        int64                  `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SuccessFlagResponse struct {
	Success bool `json:"success"`
}

type PublicChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type IdentityRequest struct {
	Prompt string `json:"prompt"`
}

type IdentityResponse struct {
	System string `json:"system"`
	Reply  string `json:"reply"`
}

type IdentityErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
