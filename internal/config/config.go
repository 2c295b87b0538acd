package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventsTopic        string
	AuthDevBypass      bool
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	SessionSecret      string
}

// AIConfig holds the inference endpoints. An empty URL means the backend
// is not configured.
type AIConfig struct {
	LocalBrainURL   string
	LocalBrainModel string
	OllamaBaseURL   string
	OllamaModel     string
	TimeoutSeconds  int
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			EventsTopic:        getEnv("CHAT_EVENTS_TOPIC", "CHAT_EVENTS"),
			AuthDevBypass:      getEnvAsBool("AUTH_DEV_BYPASS", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:5000/api/auth/google/callback"),
			SessionSecret:      getEnv("SESSION_SECRET", ""),
		},
		Ai: AIConfig{
			LocalBrainURL:   getEnv("LOCAL_AI_BRAIN_URL", ""),
			LocalBrainModel: getEnv("LOCAL_AI_BRAIN_MODEL", "local-brain"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", ""),
			OllamaModel:     getEnv("OLLAMA_MODEL", "gemma3:4b"),
			TimeoutSeconds:  getEnvAsInt("LLM_TIMEOUT_SECONDS", 120),
		},
		Otel: OtelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
