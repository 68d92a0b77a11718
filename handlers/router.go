package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cert-quiz/exam"
	"cert-quiz/middleware"
	"cert-quiz/web"
)

// NewRouter wires pages, the JSON API and the health check.
func NewRouter(q *Quiz, log *zap.Logger) (*gin.Engine, error) {
	router := gin.New()

	renderer, err := web.Renderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}
	router.HTMLRender = renderer

	router.Use(middleware.Logger(log), middleware.Recovery(log))

	router.GET("/healthz", Health(q))

	// Pages
	router.GET("/", Index(q))
	router.POST("/start", PageTransition(q, log, "start", (*exam.Session).Start))
	router.POST("/select", PageSelect(q, log))
	router.POST("/next", PageTransition(q, log, "next", (*exam.Session).Next))
	router.POST("/previous", PageTransition(q, log, "previous", (*exam.Session).Previous))
	router.POST("/finish", PageTransition(q, log, "finish", (*exam.Session).Finish))
	router.POST("/review/:index", PageReview(q, log))
	router.POST("/back", PageTransition(q, log, "back", (*exam.Session).BackToSummary))
	router.POST("/home", PageTransition(q, log, "home", (*exam.Session).Home))

	// API Routes (version 1)
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/state", GetState(q))
		apiV1.POST("/start", StartQuiz(q))
		apiV1.POST("/select", SelectOption(q))
		apiV1.POST("/next", NextQuestion(q))
		apiV1.POST("/previous", PreviousQuestion(q))
		apiV1.POST("/finish", FinishQuiz(q))
		apiV1.POST("/review/:index", ReviewQuestion(q))
		apiV1.GET("/review", GetReview(q))
		apiV1.POST("/back", BackToSummary(q))
		apiV1.POST("/home", ReturnHome(q))
		apiV1.GET("/summary", GetSummary(q))
		apiV1.POST("/receipts/verify", VerifyReceipt(q))
	}
	return router, nil
}
