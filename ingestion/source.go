package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"cert-quiz/db"
	"cert-quiz/models"
)

var (
	// ErrEmptyBank is returned when a source yields no questions.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrUnsupportedFormat is returned for bank files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported question bank format")
)

// Source provides the question bank.
type Source interface {
	LoadQuestions(ctx context.Context) ([]models.Question, error)
}

// FileSource reads a packaged bank file. The format follows the extension: .json, .yaml or .yml.
type FileSource struct {
	Path string
}

// LoadQuestions reads, decodes and validates the bank file.
func (f FileSource) LoadQuestions(ctx context.Context) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", f.Path, err)
	}
	questions, err := Decode(data, filepath.Ext(f.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode question bank %s: %w", f.Path, err)
	}
	if err := Validate(questions); err != nil {
		return nil, fmt.Errorf("invalid question bank %s: %w", f.Path, err)
	}
	return questions, nil
}

// Decode parses a bank in the format named by ext.
func Decode(data []byte, ext string) ([]models.Question, error) {
	var questions []models.Question
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &questions); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return questions, nil
}

// PostgresSource reads the bank from the questions table.
type PostgresSource struct {
	Pool *pgxpool.Pool
}

// LoadQuestions queries and validates the stored bank.
func (p PostgresSource) LoadQuestions(ctx context.Context) ([]models.Question, error) {
	questions, err := db.LoadQuestions(ctx, p.Pool)
	if err != nil {
		return nil, err
	}
	if err := Validate(questions); err != nil {
		return nil, fmt.Errorf("invalid question bank in database: %w", err)
	}
	return questions, nil
}
