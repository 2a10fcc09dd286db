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
	Ai       AIConfig
	Insight  InsightConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	LogLevel    string
	NatsURL     string
	RedisURL    string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OllamaBaseURL      string // embedding endpoint
	EmbeddingModel     string
	LLMProvider        string // "ollama"
	LLMModel           string
	LLMHost            string // OLLAMA_HOST, may omit the scheme
	LLMTimeoutSeconds  int
	EmbedTimeoutSecond int
}

type InsightConfig struct {
	ClusterEps         float64
	ClusterMinSamples  int
	ServiceUsername    string
	ServiceEmail       string
	GenerationLockTTL  int // seconds
	GenerationLockWait int // milliseconds, 0 = single attempt
	EventTopic         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/insight.log"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			NatsURL:     getEnv("NATS_URL", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "mistral"),
			LLMHost:            getEnv("OLLAMA_HOST", "127.0.0.1:11434"),
			LLMTimeoutSeconds:  getEnvAsInt("LLM_TIMEOUT_SECONDS", 120),
			EmbedTimeoutSecond: getEnvAsInt("EMBED_TIMEOUT_SECONDS", 60),
		},
		Insight: InsightConfig{
			ClusterEps:         getEnvAsFloat("CLUSTER_EPS", 1.1),
			ClusterMinSamples:  getEnvAsInt("CLUSTER_MIN_SAMPLES", 1),
			ServiceUsername:    getEnv("GENAI_SERVICE_USERNAME", "gen_ai_serviceuser"),
			ServiceEmail:       getEnv("GENAI_SERVICE_EMAIL", "genai@retrospectives.local"),
			GenerationLockTTL:  getEnvAsInt("GENERATION_LOCK_TTL_SECONDS", 300),
			GenerationLockWait: getEnvAsInt("GENERATION_LOCK_WAIT_MS", 0),
			EventTopic:         getEnv("INSIGHT_EVENT_TOPIC", "RETRO_INSIGHT_EVENTS"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
