package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cert-quiz/config"
	"cert-quiz/db"
	"cert-quiz/exam"
	"cert-quiz/ingestion"
)

var rootCmd = &cobra.Command{
	Use:   "cert-quiz",
	Short: "Certification exam practice quiz",
	Long: `cert-quiz draws a random set of questions from a certification exam bank,
walks you through them one at a time and scores the attempt with a review mode.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSession builds a session tuned by the quiz config.
func newSession(cfg *config.Config) *exam.Session {
	seed := cfg.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return exam.NewSession(
		exam.WithRand(rand.New(rand.NewSource(seed))),
		exam.WithMaxQuestions(cfg.Quiz.MaxQuestions),
		exam.WithPassingScore(cfg.Quiz.PassingScore),
	)
}

// newSource picks the configured question source. The returned func releases its resources.
func newSource(ctx context.Context, cfg *config.Config) (ingestion.Source, func(), error) {
	switch cfg.QuestionSource {
	case config.SourcePostgres:
		pool, err := db.InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return ingestion.PostgresSource{Pool: pool}, pool.Close, nil
	default:
		return ingestion.FileSource{Path: cfg.QuestionsPath}, func() {}, nil
	}
}
