package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	S3          S3Config
	Log         LogConfig
	CORS        CORSConfig
	Email       EmailConfig
	LLM         LLMConfig
	Interpreter InterpreterConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	ReviewAddress string `mapstructure:"review_address"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LocalLLMConfig holds settings for the local OpenAI-compatible runtime.
type LocalLLMConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	Model            string `mapstructure:"model"`
	VisionModel      string `mapstructure:"vision_model"`
	ProbeTimeoutSecs int    `mapstructure:"probe_timeout_secs"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
}

// RemoteLLMConfig holds settings for the hosted completion API.
type RemoteLLMConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds completion provider settings. The gateway prefers the
// local runtime and falls back to the remote API.
type LLMConfig struct {
	Local          LocalLLMConfig  `mapstructure:"local"`
	Remote         RemoteLLMConfig `mapstructure:"remote"`
	MaxAttempts    int             `mapstructure:"max_attempts"`
	RetryDelaySecs int             `mapstructure:"retry_delay_secs"`
}

// InterpreterConfig holds document interpretation settings.
type InterpreterConfig struct {
	DefaultVendorName string `mapstructure:"default_vendor_name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT verification settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for source image archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CHOUBO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHOUBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "choubo")
	v.SetDefault("db.password", "choubo_secret")
	v.SetDefault("db.name", "choubo_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "choubo")

	// S3 defaults
	v.SetDefault("s3.region", "ap-northeast-1")
	v.SetDefault("s3.bucket", "choubo-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-northeast-1")
	v.SetDefault("email.from_address", "noreply@choubo.jp")
	v.SetDefault("email.from_name", "Choubo")
	v.SetDefault("email.review_address", "")

	// LLM defaults
	v.SetDefault("llm.local.base_url", "http://localhost:11434")
	v.SetDefault("llm.local.model", "qwen2.5:7b")
	v.SetDefault("llm.local.vision_model", "llama3.2-vision")
	v.SetDefault("llm.local.probe_timeout_secs", 5)
	v.SetDefault("llm.local.timeout_secs", 120)
	v.SetDefault("llm.remote.api_key", "")
	v.SetDefault("llm.remote.endpoint", "https://api.deepseek.com/v1/chat/completions")
	v.SetDefault("llm.remote.model", "deepseek-chat")
	v.SetDefault("llm.remote.timeout_secs", 25)
	v.SetDefault("llm.max_attempts", 2)
	v.SetDefault("llm.retry_delay_secs", 2)

	// Interpreter defaults
	v.SetDefault("interpreter.default_vendor_name", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "CHOUBO_SERVER_PORT",
		"server.read_timeout":              "CHOUBO_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "CHOUBO_SERVER_WRITE_TIMEOUT",
		"server.environment":               "CHOUBO_SERVER_ENVIRONMENT",
		"db.host":                          "CHOUBO_DB_HOST",
		"db.port":                          "CHOUBO_DB_PORT",
		"db.user":                          "CHOUBO_DB_USER",
		"db.password":                      "CHOUBO_DB_PASSWORD",
		"db.name":                          "CHOUBO_DB_NAME",
		"db.sslmode":                       "CHOUBO_DB_SSLMODE",
		"db.max_open":                      "CHOUBO_DB_MAX_OPEN",
		"db.max_idle":                      "CHOUBO_DB_MAX_IDLE",
		"jwt.secret":                       "CHOUBO_JWT_SECRET",
		"jwt.issuer":                       "CHOUBO_JWT_ISSUER",
		"s3.region":                        "CHOUBO_S3_REGION",
		"s3.bucket":                        "CHOUBO_S3_BUCKET",
		"s3.endpoint":                      "CHOUBO_S3_ENDPOINT",
		"s3.access_key":                    "CHOUBO_S3_ACCESS_KEY",
		"s3.secret_key":                    "CHOUBO_S3_SECRET_KEY",
		"s3.presign_expiry":                "CHOUBO_S3_PRESIGN_EXPIRY",
		"log.level":                        "CHOUBO_LOG_LEVEL",
		"log.format":                       "CHOUBO_LOG_FORMAT",
		"cors.allowed_origins":             "CHOUBO_CORS_ALLOWED_ORIGINS",
		"email.provider":                   "CHOUBO_EMAIL_PROVIDER",
		"email.region":                     "CHOUBO_EMAIL_REGION",
		"email.from_address":               "CHOUBO_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "CHOUBO_EMAIL_FROM_NAME",
		"email.review_address":             "CHOUBO_EMAIL_REVIEW_ADDRESS",
		"llm.local.base_url":               "CHOUBO_LLM_LOCAL_BASE_URL",
		"llm.local.model":                  "CHOUBO_LLM_LOCAL_MODEL",
		"llm.local.vision_model":           "CHOUBO_LLM_LOCAL_VISION_MODEL",
		"llm.local.probe_timeout_secs":     "CHOUBO_LLM_LOCAL_PROBE_TIMEOUT_SECS",
		"llm.local.timeout_secs":           "CHOUBO_LLM_LOCAL_TIMEOUT_SECS",
		"llm.remote.api_key":               "CHOUBO_LLM_REMOTE_API_KEY",
		"llm.remote.endpoint":              "CHOUBO_LLM_REMOTE_ENDPOINT",
		"llm.remote.model":                 "CHOUBO_LLM_REMOTE_MODEL",
		"llm.remote.timeout_secs":          "CHOUBO_LLM_REMOTE_TIMEOUT_SECS",
		"llm.max_attempts":                "CHOUBO_LLM_MAX_ATTEMPTS",
		"llm.retry_delay_secs":            "CHOUBO_LLM_RETRY_DELAY_SECS",
		"interpreter.default_vendor_name": "CHOUBO_INTERPRETER_DEFAULT_VENDOR_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CHOUBO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CHOUBO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		ReviewAddress: v.GetString("email.review_address"),
	}

	cfg.LLM = LLMConfig{
		Local: LocalLLMConfig{
			BaseURL:          v.GetString("llm.local.base_url"),
			Model:            v.GetString("llm.local.model"),
			VisionModel:      v.GetString("llm.local.vision_model"),
			ProbeTimeoutSecs: v.GetInt("llm.local.probe_timeout_secs"),
			TimeoutSecs:      v.GetInt("llm.local.timeout_secs"),
		},
		Remote: RemoteLLMConfig{
			APIKey:      v.GetString("llm.remote.api_key"),
			Endpoint:    v.GetString("llm.remote.endpoint"),
			Model:       v.GetString("llm.remote.model"),
			TimeoutSecs: v.GetInt("llm.remote.timeout_secs"),
		},
		MaxAttempts:    v.GetInt("llm.max_attempts"),
		RetryDelaySecs: v.GetInt("llm.retry_delay_secs"),
	}

	cfg.Interpreter = InterpreterConfig{
		DefaultVendorName: v.GetString("interpreter.default_vendor_name"),
	}

	return cfg, nil
}
