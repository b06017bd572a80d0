package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderGroq        = "groq"
	ProviderGemini      = "gemini"
)

var (
	ErrMissingCredential = errors.New("missing model provider credential")
	ErrUnknownProvider   = errors.New("unknown LLM provider")
)

// Default OpenAI-compatible endpoints per provider
var defaultBaseURLs = map[string]string{
	ProviderHuggingFace: "https://router.huggingface.co/v1",
	ProviderGroq:        "https://api.groq.com/openai/v1",
}

// Default model per provider when MODEL_ID is unset
var defaultModels = map[string]string{
	ProviderHuggingFace: "meta-llama/Llama-2-7b-chat-hf",
	ProviderOpenAI:      "gpt-4o-mini",
	ProviderGroq:        "llama-3.1-8b-instant",
	ProviderGemini:      "gemini-2.0-flash",
}

type Config struct {
	// Server Configuration
	ServerPort  string
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	// LLM Configuration
	LLMProvider      string
	ModelID          string
	Device           string
	HuggingFaceToken string
	OpenAIKey        string
	GroqKey          string
	GeminiKey        string
	LLMBaseURL       string
	MaxNewTokens     int
	UseFewShot       bool

	// Source Search Configuration
	NewsAPIKey     string
	NewsAPIBaseURL string
	NewsAPITimeout time.Duration
	SourcePageSize int

	// Remote client mode
	APIURL string
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment. Values in .env override the environment. A missing
// .env is fine; one that fails to parse is an error.
func LoadConfig() (*Config, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderHuggingFace))

	cfg := &Config{
		ServerPort:       getEnv("PORT", "8000"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		LLMProvider:      provider,
		ModelID:          getEnv("MODEL_ID", defaultModels[provider]),
		Device:           getEnv("DEVICE", "auto"),
		HuggingFaceToken: os.Getenv("HUGGINGFACE_TOKEN"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		GroqKey:          os.Getenv("GROQ_API_KEY"),
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", defaultBaseURLs[provider]),
		MaxNewTokens:     getEnvInt("MAX_NEW_TOKENS", 200),
		UseFewShot:       getEnvBool("USE_FEW_SHOT", true),
		NewsAPIKey:       os.Getenv("NEWSAPI_KEY"),
		NewsAPIBaseURL:   getEnv("NEWSAPI_BASE_URL", "https://newsdata.io/api/1/latest"),
		NewsAPITimeout:   getEnvDuration("NEWSAPI_TIMEOUT", 8*time.Second),
		SourcePageSize:   getEnvInt("SOURCE_PAGE_SIZE", 3),
		APIURL:           getEnv("API_URL", "http://localhost:8000/classify"),
	}

	if cfg.SourcePageSize <= 0 || cfg.SourcePageSize > 3 {
		cfg.SourcePageSize = 3
	}
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = 200
	}

	return cfg, nil
}

// Validate checks that the selected provider is known and has a credential.
// A missing credential is fatal: gated models cannot be reached without one.
func (c *Config) Validate() error {
	if _, ok := defaultModels[c.LLMProvider]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLMProvider)
	}
	if c.ProviderKey() == "" {
		return fmt.Errorf("%w: %s is required when LLM_PROVIDER is %q",
			ErrMissingCredential, credentialVars[c.LLMProvider], c.LLMProvider)
	}
	return nil
}

var credentialVars = map[string]string{
	ProviderHuggingFace: "HUGGINGFACE_TOKEN",
	ProviderOpenAI:      "OPENAI_API_KEY",
	ProviderGroq:        "GROQ_API_KEY",
	ProviderGemini:      "GEMINI_API_KEY",
}

// ProviderKey returns the credential for the selected provider
func (c *Config) ProviderKey() string {
	switch c.LLMProvider {
	case ProviderHuggingFace:
		return c.HuggingFaceToken
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGroq:
		return c.GroqKey
	case ProviderGemini:
		return c.GeminiKey
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare numbers are seconds
		if secs, err := strconv.ParseFloat(value, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
