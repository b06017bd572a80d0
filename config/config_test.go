package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "CORS_ORIGINS", "LLM_PROVIDER", "MODEL_ID",
	"DEVICE", "HUGGINGFACE_TOKEN", "OPENAI_API_KEY", "GROQ_API_KEY",
	"GEMINI_API_KEY", "LLM_BASE_URL", "MAX_NEW_TOKENS", "USE_FEW_SHOT",
	"NEWSAPI_KEY", "NEWSAPI_BASE_URL", "NEWSAPI_TIMEOUT", "SOURCE_PAGE_SIZE",
	"API_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, ProviderHuggingFace, cfg.LLMProvider)
	assert.Equal(t, "meta-llama/Llama-2-7b-chat-hf", cfg.ModelID)
	assert.Equal(t, "auto", cfg.Device)
	assert.Equal(t, "https://router.huggingface.co/v1", cfg.LLMBaseURL)
	assert.Equal(t, 200, cfg.MaxNewTokens)
	assert.True(t, cfg.UseFewShot)
	assert.Equal(t, "https://newsdata.io/api/1/latest", cfg.NewsAPIBaseURL)
	assert.Equal(t, 8*time.Second, cfg.NewsAPITimeout)
	assert.Equal(t, 3, cfg.SourcePageSize)
	assert.Equal(t, "http://localhost:8000/classify", cfg.APIURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("MAX_NEW_TOKENS", "64")
	t.Setenv("USE_FEW_SHOT", "false")
	t.Setenv("NEWSAPI_TIMEOUT", "2")
	t.Setenv("SOURCE_PAGE_SIZE", "10")
	t.Setenv("CORS_ORIGINS", "http://localhost:8501, http://ui.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderGroq, cfg.LLMProvider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ModelID)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLMBaseURL)
	assert.Equal(t, 64, cfg.MaxNewTokens)
	assert.False(t, cfg.UseFewShot)
	assert.Equal(t, 2*time.Second, cfg.NewsAPITimeout)
	assert.Equal(t, 3, cfg.SourcePageSize, "page size is capped at the source maximum")
	assert.Equal(t, []string{"http://localhost:8501", "http://ui.example"}, cfg.CORSOrigins)
	assert.Equal(t, "gsk-test", cfg.ProviderKey())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MODEL_ID", "from-environment")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MODEL_ID=from-dotenv\nNEWSAPI_KEY=nd_test\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.ModelID, ".env overrides the process environment")
	assert.Equal(t, "nd_test", cfg.NewsAPIKey)
}

func TestLoadConfig_MalformedDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOT-A-KEY=1\n"), 0o600))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "huggingface with token",
			cfg:  Config{LLMProvider: ProviderHuggingFace, HuggingFaceToken: "hf_x"},
		},
		{
			name:    "huggingface without token",
			cfg:     Config{LLMProvider: ProviderHuggingFace},
			wantErr: ErrMissingCredential,
		},
		{
			name:    "openai key does not satisfy gemini",
			cfg:     Config{LLMProvider: ProviderGemini, OpenAIKey: "sk"},
			wantErr: ErrMissingCredential,
		},
		{
			name: "gemini with key",
			cfg:  Config{LLMProvider: ProviderGemini, GeminiKey: "g"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{LLMProvider: "llamacpp", HuggingFaceToken: "hf_x"},
			wantErr: ErrUnknownProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
