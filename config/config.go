package config

import (
	"path/filepath"
	"strings"
	"time"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderCohere = "cohere"
)

// Site publish modes
const (
	PublishGit  = "git"
	PublishS3   = "s3"
	PublishNone = "none"
)

// LLMConfig selects and authenticates the completion provider.
type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	APIURL   string
	Timeout  time.Duration
}

// XConfig holds the OAuth 1.0a user-context credentials for posting.
type XConfig struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
	Endpoint     string
}

// InstagramConfig holds Graph API publishing settings.
type InstagramConfig struct {
	AccessToken string
	AccountID   string
	ImageURL    string
	GraphURL    string
}

// SiteConfig describes how the static site is built and published.
type SiteConfig struct {
	BuildCommand string
	OutputDir    string
	PublishMode  string
	GitRemote    string
	GitBranch    string
	S3Bucket     string
	S3Region     string
	S3Profile    string
	S3Prefix     string
	S3Endpoint   string
	S3PathStyle  bool
}

// KafkaConfig enables pipeline events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config is the full runtime configuration, read once at startup.
type Config struct {
	Root      string
	LogFormat string

	LLM       LLMConfig
	X         XConfig
	Instagram InstagramConfig
	Site      SiteConfig
	Kafka     KafkaConfig

	TrendFeeds      []string
	TrendLimit      int
	TrendExtractTop int

	ServeAddr         string
	DailySchedule     string
	DispatchSchedules []string
	DispatchDelayMax  time.Duration
}

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderCohere: "command-r-plus",
}

var defaultURLs = map[string]string{
	ProviderGemini: "https://generativelanguage.googleapis.com/v1beta/openai",
	ProviderOpenAI: "https://api.openai.com/v1",
}

var providerKeyVars = map[string]string{
	ProviderGemini: "GEMINI_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderCohere: "COHERE_API_KEY",
}

// Load reads the configuration from the environment. Call LoadEnv first to
// pick up .env files.
func Load() *Config {
	provider := strings.ToLower(GetEnv("LLM_PROVIDER", ProviderGemini))
	apiKey := GetEnv("LLM_API_KEY", GetEnv(providerKeyVars[provider], ""))

	root := GetEnv("AUTOBLOG_ROOT", ".")

	return &Config{
		Root:      root,
		LogFormat: GetEnv("LOG_FORMAT", "text"),
		LLM: LLMConfig{
			Provider: provider,
			Model:    GetEnv("LLM_MODEL", defaultModels[provider]),
			APIKey:   apiKey,
			APIURL:   GetEnv("LLM_API_URL", defaultURLs[provider]),
			Timeout:  time.Duration(GetEnvInt("LLM_TIMEOUT_SECONDS", 90)) * time.Second,
		},
		X: XConfig{
			APIKey:       GetEnv("X_API_KEY", ""),
			APISecret:    GetEnv("X_API_SECRET", ""),
			AccessToken:  GetEnv("X_ACCESS_TOKEN", ""),
			AccessSecret: GetEnv("X_ACCESS_TOKEN_SECRET", ""),
			Endpoint:     GetEnv("X_API_URL", "https://api.twitter.com/2/tweets"),
		},
		Instagram: InstagramConfig{
			AccessToken: GetEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			AccountID:   GetEnv("INSTAGRAM_BUSINESS_ACCOUNT_ID", ""),
			ImageURL:    GetEnv("INSTAGRAM_IMAGE_URL", DefaultPlaceholderImage),
			GraphURL:    GetEnv("INSTAGRAM_GRAPH_URL", "https://graph.facebook.com/"+GraphAPIVersion),
		},
		Site: SiteConfig{
			BuildCommand: GetEnv("SITE_BUILD_COMMAND", "npx @11ty/eleventy"),
			OutputDir:    GetEnv("SITE_OUTPUT_DIR", filepath.Join(root, "_site")),
			PublishMode:  strings.ToLower(GetEnv("SITE_PUBLISH", PublishGit)),
			GitRemote:    GetEnv("GIT_REMOTE", "origin"),
			GitBranch:    GetEnv("GIT_BRANCH", "main"),
			S3Bucket:     GetEnv("S3_BUCKET", ""),
			S3Region:     GetEnv("AWS_REGION", "ap-northeast-1"),
			S3Profile:    GetEnv("AWS_PROFILE", ""),
			S3Prefix:     GetEnv("S3_PREFIX", ""),
			S3Endpoint:   GetEnv("S3_ENDPOINT", ""),
			S3PathStyle:  GetEnvBool("S3_USE_PATH_STYLE", false),
		},
		Kafka: KafkaConfig{
			Brokers: GetEnvList("KAFKA_BROKERS", nil),
			Topic:   GetEnv("KAFKA_TOPIC", "autoblog.pipeline"),
		},
		TrendFeeds:        GetEnvList("TREND_FEEDS", nil),
		TrendLimit:        GetEnvInt("TREND_LIMIT", 10),
		TrendExtractTop:   GetEnvInt("TREND_EXTRACT_TOP", 3),
		ServeAddr:         GetEnv("SERVE_ADDR", ":8080"),
		DailySchedule:     GetEnv("DAILY_SCHEDULE", DailyPipelineSchedule),
		DispatchSchedules: GetEnvList("DISPATCH_SCHEDULES", DispatchSchedules),
		DispatchDelayMax:  time.Duration(GetEnvInt("DISPATCH_DELAY_MAX_MINUTES", int(MaxDispatchDelay/time.Minute))) * time.Minute,
	}
}

// RequireLLM checks the completion provider settings.
func (c *Config) RequireLLM() error {
	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		return &ConfigurationError{Key: "LLM_PROVIDER", Invalid: "unknown provider " + c.LLM.Provider}
	}
	key := providerKeyVars[c.LLM.Provider]
	return missing("text generation", "LLM_API_KEY or "+key, c.LLM.APIKey)
}

// RequireX checks the X posting credentials.
func (c *Config) RequireX() error {
	return missing("posting to X",
		"X_API_KEY", c.X.APIKey,
		"X_API_SECRET", c.X.APISecret,
		"X_ACCESS_TOKEN", c.X.AccessToken,
		"X_ACCESS_TOKEN_SECRET", c.X.AccessSecret,
	)
}

// RequireInstagram checks the Instagram publishing credentials.
func (c *Config) RequireInstagram() error {
	return missing("posting to Instagram",
		"INSTAGRAM_ACCESS_TOKEN", c.Instagram.AccessToken,
		"INSTAGRAM_BUSINESS_ACCOUNT_ID", c.Instagram.AccountID,
	)
}

// RequireS3 checks the bucket when publishing to S3.
func (c *Config) RequireS3() error {
	return missing("publishing the site to S3", "S3_BUCKET", c.Site.S3Bucket)
}
