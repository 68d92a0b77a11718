package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerPort)
	assert.Equal(t, SourceFile, cfg.QuestionSource)
	assert.Equal(t, 65, cfg.Quiz.MaxQuestions)
	assert.Equal(t, 70.0, cfg.Quiz.PassingScore)
	assert.Equal(t, "cert-quiz", cfg.Receipt.Issuer)
	assert.Equal(t, 720*time.Hour, cfg.Receipt.TTL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CERTQUIZ_SERVER_PORT", ":9090")
	t.Setenv("CERTQUIZ_QUIZ_MAX_QUESTIONS", "10")
	t.Setenv("CERTQUIZ_RECEIPT_ISSUER", "tests")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerPort)
	assert.Equal(t, 10, cfg.Quiz.MaxQuestions)
	assert.Equal(t, "tests", cfg.Receipt.Issuer)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "QUESTIONS_PATH: banks/aws.yaml\nQUIZ:\n  SEED: 42\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "banks/aws.yaml", cfg.QuestionsPath)
	assert.Equal(t, int64(42), cfg.Quiz.Seed)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CERTQUIZ_GIN_MODE=release\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CERTQUIZ_GIN_MODE") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestValidate(t *testing.T) {
	base := Config{
		QuestionSource: SourceFile,
		QuestionsPath:  "bank.json",
		Quiz:           QuizConfig{MaxQuestions: 65, PassingScore: 70},
		Receipt:        ReceiptConfig{SigningKey: "k"},
	}
	require.NoError(t, base.Validate())

	tests := map[string]func(c *Config){
		"zero questions":    func(c *Config) { c.Quiz.MaxQuestions = 0 },
		"score above 100":   func(c *Config) { c.Quiz.PassingScore = 101 },
		"unknown source":    func(c *Config) { c.QuestionSource = "s3" },
		"postgres no url":   func(c *Config) { c.QuestionSource = SourcePostgres },
		"file no path":      func(c *Config) { c.QuestionsPath = "" },
		"empty signing key": func(c *Config) { c.Receipt.SigningKey = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
