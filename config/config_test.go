package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "LLM_PROVIDER", "LLM_API_KEY", "GEMINI_API_KEY", "LLM_MODEL", "LLM_API_URL",
		"AUTOBLOG_ROOT", "DISPATCH_SCHEDULES", "KAFKA_BROKERS", "SITE_PUBLISH", "DISPATCH_DELAY_MAX_MINUTES")

	cfg := Load()
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, []string{"0 8 * * *", "0 12 * * *", "0 18 * * *"}, cfg.DispatchSchedules)
	assert.Equal(t, 2*time.Hour, cfg.DispatchDelayMax)
	assert.Equal(t, PublishGit, cfg.Site.PublishMode)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadProviderKeyFallback(t *testing.T) {
	clearEnv(t, "LLM_API_KEY", "LLM_MODEL")
	t.Setenv("LLM_PROVIDER", "Cohere")
	t.Setenv("COHERE_API_KEY", "co-key")
	t.Setenv("KAFKA_BROKERS", "a:9092, ,b:9092")

	cfg := Load()
	assert.Equal(t, ProviderCohere, cfg.LLM.Provider)
	assert.Equal(t, "co-key", cfg.LLM.APIKey)
	assert.Equal(t, "command-r-plus", cfg.LLM.Model)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.NoError(t, cfg.RequireLLM())
}

func TestRequireReportsFirstMissingKey(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		call func(*Config) error
		key  string
	}{
		{"llm", Config{LLM: LLMConfig{Provider: ProviderGemini}}, (*Config).RequireLLM, "LLM_API_KEY or GEMINI_API_KEY"},
		{"unknown provider", Config{LLM: LLMConfig{Provider: "mystery", APIKey: "k"}}, (*Config).RequireLLM, "LLM_PROVIDER"},
		{"x", Config{X: XConfig{APIKey: "k", APISecret: "s"}}, (*Config).RequireX, "X_ACCESS_TOKEN"},
		{"instagram", Config{Instagram: InstagramConfig{AccessToken: "t"}}, (*Config).RequireInstagram, "INSTAGRAM_BUSINESS_ACCOUNT_ID"},
		{"s3", Config{}, (*Config).RequireS3, "S3_BUCKET"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call(&tc.cfg)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tc.key, cfgErr.Key)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("AB_INT", "12")
	t.Setenv("AB_BAD_INT", "twelve")
	t.Setenv("AB_BOOL", "true")
	assert.Equal(t, 12, GetEnvInt("AB_INT", 1))
	assert.Equal(t, 1, GetEnvInt("AB_BAD_INT", 1))
	assert.True(t, GetEnvBool("AB_BOOL", false))
	assert.Equal(t, "fallback", GetEnv("AB_UNSET_VALUE", "fallback"))
}
