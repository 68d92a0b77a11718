package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cert-quiz/models"
)

// InitDB initializes the PostgreSQL database connection pool
func InitDB(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Ping the database to verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// CreateSchema sets up the question bank table.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		question_text TEXT NOT NULL,
		options TEXT[] NOT NULL, -- Each "<Letter>. <text>", in display order
		correct_answers TEXT[] NOT NULL CHECK (cardinality(correct_answers) >= 1)
	);
	`
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

// LoadQuestions reads the whole bank in insertion order.
func LoadQuestions(ctx context.Context, pool *pgxpool.Pool) ([]models.Question, error) {
	rows, err := pool.Query(ctx, `
		SELECT question_text, options, correct_answers
		FROM questions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.Text, &q.Options, &q.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question rows: %w", err)
	}
	return questions, nil
}

// ReplaceQuestions swaps the stored bank for questions in one transaction.
func ReplaceQuestions(ctx context.Context, pool *pgxpool.Pool, questions []models.Question) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
			return fmt.Errorf("failed to clear questions: %w", err)
		}
		batch := &pgx.Batch{}
		for _, q := range questions {
			batch.Queue(`
				INSERT INTO questions (question_text, options, correct_answers)
				VALUES ($1, $2, $3)
			`, q.Text, q.Options, q.CorrectAnswers)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		return nil
	})
}
