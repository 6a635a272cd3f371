package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Intake    IntakeConfig    `mapstructure:"intake"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Quota     QuotaConfig     `mapstructure:"quota"`
	CRM       CRMConfig       `mapstructure:"crm"`
	Mail      MailConfig      `mapstructure:"mail"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type IntakeConfig struct {
	MaxFileBytes    int64 `mapstructure:"max_file_bytes"`
	URLMinChars     int   `mapstructure:"url_min_chars"`
	FetchTimeoutSec int   `mapstructure:"fetch_timeout_seconds"`
}

// ValidatorConfig holds the content-gate thresholds. These are tuned policy,
// not fixed contract values, so they live in config.
type ValidatorConfig struct {
	ImageMinChars    int     `mapstructure:"image_min_chars"`
	StrictMinChars   int     `mapstructure:"strict_min_chars"`
	NoDigitsMaxChars int     `mapstructure:"no_digits_max_chars"`
	NoVocabMaxChars  int     `mapstructure:"no_vocab_max_chars"`
	RepetitionTokens int     `mapstructure:"repetition_tokens"`
	MinDistinctRatio float64 `mapstructure:"min_distinct_ratio"`
}

type QuotaConfig struct {
	DailyLimit int `mapstructure:"daily_limit"`
}

type CRMConfig struct {
	APIKey     string `mapstructure:"api_key"`
	LocationID string `mapstructure:"location_id"`
	BaseURL    string `mapstructure:"base_url"`
}

type MailConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout_seconds", 60)
	v.SetDefault("intake.max_file_bytes", 15*1024*1024)
	v.SetDefault("intake.url_min_chars", 50)
	v.SetDefault("intake.fetch_timeout_seconds", 20)
	v.SetDefault("validator.image_min_chars", 10)
	v.SetDefault("validator.strict_min_chars", 100)
	v.SetDefault("validator.no_digits_max_chars", 500)
	v.SetDefault("validator.no_vocab_max_chars", 200)
	v.SetDefault("validator.repetition_tokens", 50)
	v.SetDefault("validator.min_distinct_ratio", 0.2)
	v.SetDefault("quota.daily_limit", 10)
	v.SetDefault("crm.base_url", "https://services.leadconnectorhq.com")
	v.SetDefault("mail.base_url", "https://api.sendgrid.com")
	v.SetDefault("mail.from_name", "Menu Analyzer")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")
	v.BindEnv("crm.api_key", "GHL_API_KEY")
	v.BindEnv("crm.location_id", "GHL_LOCATION_ID")
	v.BindEnv("mail.api_key", "SENDGRID_API_KEY")
	v.BindEnv("mail.from_email", "SENDGRID_FROM_EMAIL")
	v.BindEnv("mail.from_name", "SENDGRID_FROM_NAME")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
