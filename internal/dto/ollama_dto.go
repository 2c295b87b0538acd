package dto

import "time"

type OllamaStatusResponse struct {
	Available    bool     `json:"available"`
	Configured   bool     `json:"configured"`
	CurrentModel string   `json:"currentModel,omitempty"`
	Models       []string `json:"models,omitempty"`
	Message      string   `json:"message,omitempty"`
}

type OllamaModelDetailsDTO struct {
	Format            string `json:"format,omitempty"`
	Family            string `json:"family,omitempty"`
	ParameterSize     string `json:"parameter_size,omitempty"`
	QuantizationLevel string `json:"quantization_level,omitempty"`
}

type OllamaModelDTO struct {
	Name       string                `json:"name"`
	Size       int64                 `json:"size"`
	Digest     string                `json:"digest,omitempty"`
	ModifiedAt time.Time             `json:"modified_at"`
	Details    OllamaModelDetailsDTO `json:"details"`
}

// Models is always serialized, as an empty array when nothing is available.
type OllamaModelsResponse struct {
	Models       []OllamaModelDTO `json:"models"`
	CurrentModel string           `json:"currentModel,omitempty"`
	Error        string           `json:"error,omitempty"`
}
