package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Analyzer AnalyzerConfig
	Upload   UploadConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// OCRConfig holds settings for the external OCR provider.
type OCRConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Endpoint     string `mapstructure:"endpoint"`
	Model        string `mapstructure:"model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	MaxPayloadMB int64  `mapstructure:"max_payload_mb"`
}

// AnalyzerConfig holds settings for the language-model provider.
// Models is the ordered fallback chain of model identifiers.
type AnalyzerConfig struct {
	APIKey      string   `mapstructure:"api_key"`
	Endpoint    string   `mapstructure:"endpoint"`
	Models      []string `mapstructure:"models"`
	TimeoutSecs int      `mapstructure:"timeout_secs"`
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxFiles      int   `mapstructure:"max_files"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CLAIMCHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// OCR provider defaults
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.endpoint", "https://api.mistral.ai/v1/ocr")
	v.SetDefault("ocr.model", "mistral-ocr-latest")
	v.SetDefault("ocr.timeout_secs", 120)
	v.SetDefault("ocr.max_payload_mb", 10)

	// Analyzer provider defaults
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("analyzer.models", "gpt-4.1,gpt-4.1-mini,gpt-4")
	v.SetDefault("analyzer.timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_files", 3)
	v.SetDefault("upload.max_file_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CLAIMCHECK_SERVER_PORT",
		"server.read_timeout":   "CLAIMCHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CLAIMCHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CLAIMCHECK_SERVER_ENVIRONMENT",
		"ocr.api_key":           "CLAIMCHECK_OCR_API_KEY",
		"ocr.endpoint":          "CLAIMCHECK_OCR_ENDPOINT",
		"ocr.model":             "CLAIMCHECK_OCR_MODEL",
		"ocr.timeout_secs":      "CLAIMCHECK_OCR_TIMEOUT_SECS",
		"ocr.max_payload_mb":    "CLAIMCHECK_OCR_MAX_PAYLOAD_MB",
		"analyzer.api_key":      "CLAIMCHECK_ANALYZER_API_KEY",
		"analyzer.endpoint":     "CLAIMCHECK_ANALYZER_ENDPOINT",
		"analyzer.models":       "CLAIMCHECK_ANALYZER_MODELS",
		"analyzer.timeout_secs": "CLAIMCHECK_ANALYZER_TIMEOUT_SECS",
		"upload.max_files":      "CLAIMCHECK_UPLOAD_MAX_FILES",
		"upload.max_file_size_mb": "CLAIMCHECK_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":    "CLAIMCHECK_CORS_ALLOWED_ORIGINS",
		"log.level":               "CLAIMCHECK_LOG_LEVEL",
		"log.format":              "CLAIMCHECK_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// The provider keys are also accepted under their conventional names so a
	// plain MISTRAL_API_KEY / OPENAI_API_KEY environment keeps working.
	ocrKey := v.GetString("ocr.api_key")
	if ocrKey == "" {
		ocrKey = os.Getenv("MISTRAL_API_KEY")
	}
	analyzerKey := v.GetString("analyzer.api_key")
	if analyzerKey == "" {
		analyzerKey = os.Getenv("OPENAI_API_KEY")
	}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAIMCHECK_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMCHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.OCR = OCRConfig{
		APIKey:       ocrKey,
		Endpoint:     v.GetString("ocr.endpoint"),
		Model:        v.GetString("ocr.model"),
		TimeoutSecs:  v.GetInt("ocr.timeout_secs"),
		MaxPayloadMB: v.GetInt64("ocr.max_payload_mb"),
	}
	cfg.Analyzer = AnalyzerConfig{
		APIKey:      analyzerKey,
		Endpoint:    v.GetString("analyzer.endpoint"),
		Models:      splitList(v.GetString("analyzer.models")),
		TimeoutSecs: v.GetInt("analyzer.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFiles:      v.GetInt("upload.max_files"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string into a trimmed, non-empty slice.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
