package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported question sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// ErrInvalidConfig wraps every validation failure from LoadConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	ServerPort     string        `mapstructure:"SERVER_PORT"`
	GinMode        string        `mapstructure:"GIN_MODE"`
	Env            string        `mapstructure:"ENV"`             // "production" switches to the JSON logger
	QuestionSource string        `mapstructure:"QUESTION_SOURCE"` // "file" or "postgres"
	QuestionsPath  string        `mapstructure:"QUESTIONS_PATH"`  // JSON or YAML bank for the file source
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	Quiz           QuizConfig    `mapstructure:"QUIZ"`
	Receipt        ReceiptConfig `mapstructure:"RECEIPT"`
}

// QuizConfig holds session tuning
type QuizConfig struct {
	MaxQuestions int     `mapstructure:"MAX_QUESTIONS"`
	PassingScore float64 `mapstructure:"PASSING_SCORE"` // Informational pass mark, percent
	Seed         int64   `mapstructure:"SEED"`          // 0 seeds from the clock
}

// ReceiptConfig holds signing settings for score receipts
type ReceiptConfig struct {
	SigningKey string        `mapstructure:"SIGNING_KEY"`
	Issuer     string        `mapstructure:"ISSUER"`
	TTL        time.Duration `mapstructure:"TTL"`
}

// LoadConfig loads configuration from .env, config.yaml and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set defaults
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	v.SetDefault("ENV", "development")
	v.SetDefault("QUESTION_SOURCE", SourceFile)
	v.SetDefault("QUESTIONS_PATH", "data/practice_exams_questions_answers_treated.json")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("QUIZ.MAX_QUESTIONS", 65)
	v.SetDefault("QUIZ.PASSING_SCORE", 70.0)
	v.SetDefault("QUIZ.SEED", 0)
	v.SetDefault("RECEIPT.SIGNING_KEY", "change-me-cert-quiz-receipt-key") // IMPORTANT: Change this in production
	v.SetDefault("RECEIPT.ISSUER", "cert-quiz")
	v.SetDefault("RECEIPT.TTL", "720h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	// Override with environment variables (e.g., CERTQUIZ_SERVER_PORT, CERTQUIZ_QUIZ_MAX_QUESTIONS)
	v.SetEnvPrefix("CERTQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Quiz.MaxQuestions < 1 {
		return fmt.Errorf("%w: QUIZ.MAX_QUESTIONS must be at least 1, got %d", ErrInvalidConfig, c.Quiz.MaxQuestions)
	}
	if c.Quiz.PassingScore < 0 || c.Quiz.PassingScore > 100 {
		return fmt.Errorf("%w: QUIZ.PASSING_SCORE must be between 0 and 100, got %.1f", ErrInvalidConfig, c.Quiz.PassingScore)
	}
	switch c.QuestionSource {
	case SourceFile:
		if c.QuestionsPath == "" {
			return fmt.Errorf("%w: QUESTIONS_PATH is required for the file source", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown QUESTION_SOURCE %q", ErrInvalidConfig, c.QuestionSource)
	}
	if c.Receipt.SigningKey == "" {
		return fmt.Errorf("%w: RECEIPT.SIGNING_KEY is empty", ErrInvalidConfig)
	}
	return nil
}
