package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cert-quiz/config"
	"cert-quiz/handlers"
	"cert-quiz/logger"
	"cert-quiz/receipt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz pages and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Env)
		if err != nil {
			return err
		}
		defer log.Sync()
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context, cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	gin.SetMode(cfg.GinMode)
	quiz := handlers.NewQuiz(
		newSession(cfg),
		receipt.NewSigner(cfg.Receipt.SigningKey, cfg.Receipt.Issuer, cfg.Receipt.TTL),
		log,
	)
	router, err := handlers.NewRouter(quiz, log)
	if err != nil {
		return err
	}

	// The bank loads once in the background; the home page shows progress until it lands.
	go func() {
		_ = quiz.LoadBank(ctx, src)
	}()

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	log.Info("cert-quiz server starting",
		zap.String("addr", cfg.ServerPort),
		zap.String("question_source", cfg.QuestionSource),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
