package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	AppName   string
	APIPrefix string
	AppPort   string

	CORSAllowOrigins []string

	CorpusEmotionPath  string
	CorpusSupportPaths []string
	CorpusDatabaseURL  string

	GroqAPIKey        string
	GroqModel         string
	GroqBaseURL       string
	GenTimeoutSeconds int
	GenMaxTokens      int

	JWTSecret    string
	JWTAlgorithm string
	JWTAudience  string
	JWTIssuer    string
	AuthRequired bool

	RateLimitPerMinute int
}

func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		AppEnv:    getEnv("APP_ENV", "local"),
		AppName:   getEnv("APP_NAME", "Just We API"),
		APIPrefix: getEnv("API_PREFIX", "/api/v1"),
		AppPort:   getEnv("APP_PORT", "8000"),
		CORSAllowOrigins: getEnvCSV(
			"CORS_ALLOW_ORIGINS",
			[]string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		),
		CorpusEmotionPath:  getEnv("CORPUS_EMOTION_PATH", ""),
		CorpusSupportPaths: getEnvCSV("CORPUS_SUPPORT_PATHS", nil),
		CorpusDatabaseURL:  getEnv("CORPUS_DATABASE_URL", ""),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GenTimeoutSeconds:  getEnvInt("GEN_TIMEOUT_SECONDS", 10),
		GenMaxTokens:       getEnvInt("GEN_MAX_TOKENS", 300),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		JWTAudience:        getEnv("JWT_AUDIENCE", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", ""),
		AuthRequired:       getEnvBool("AUTH_REQUIRED", false),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.GroqBaseURL) == "" {
		return errors.New("GROQ_BASE_URL is required")
	}
	if c.GenTimeoutSeconds <= 0 {
		return errors.New("GEN_TIMEOUT_SECONDS must be positive")
	}
	if c.GenMaxTokens <= 0 {
		return errors.New("GEN_MAX_TOKENS must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.AuthRequired {
		secret := strings.TrimSpace(c.JWTSecret)
		if secret == "" {
			return errors.New("JWT_SECRET is required when AUTH_REQUIRED is set")
		}
		if secret == "change-me-in-production" {
			return errors.New("JWT_SECRET must not use insecure default value")
		}
		if len(secret) < 16 {
			return errors.New("JWT_SECRET is too short; use at least 16 characters")
		}
		if strings.TrimSpace(c.JWTAlgorithm) == "" {
			return errors.New("JWT_ALGORITHM is required when AUTH_REQUIRED is set")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvCSV(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, item := range parts {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
