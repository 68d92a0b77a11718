package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cert-quiz/config"
	"cert-quiz/db"
	"cert-quiz/ingestion"
	"cert-quiz/logger"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON or YAML question bank into Postgres",
	Long: `Import validates a question bank file and replaces the contents of the
questions table with it. Set QUESTION_SOURCE=postgres to serve from the table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for import", config.ErrInvalidConfig)
		}
		log, err := logger.New(cfg.Env)
		if err != nil {
			return err
		}
		defer log.Sync()

		path := importFile
		if path == "" {
			path = cfg.QuestionsPath
		}
		ctx := cmd.Context()
		questions, err := ingestion.FileSource{Path: path}.LoadQuestions(ctx)
		if err != nil {
			return err
		}

		pool, err := db.InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.CreateSchema(ctx, pool); err != nil {
			return err
		}
		if err := db.ReplaceQuestions(ctx, pool, questions); err != nil {
			return err
		}
		log.Info("question bank imported", zap.String("file", path), zap.Int("questions", len(questions)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "bank file to import (defaults to QUESTIONS_PATH)")
	rootCmd.AddCommand(importCmd)
}
