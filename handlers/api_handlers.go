package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cert-quiz/exam"
	"cert-quiz/models"
	"cert-quiz/receipt"
)

// transitionStatus maps session errors to HTTP status codes.
func transitionStatus(err error) int {
	switch {
	case errors.Is(err, exam.ErrTransitionUnavailable):
		return http.StatusConflict
	case errors.Is(err, exam.ErrUnknownOption), errors.Is(err, exam.ErrQuestionOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// runTransition applies a transition and answers with the new snapshot.
func runTransition(q *Quiz, c *gin.Context, name string, transition func(s *exam.Session) error) {
	snap, err := q.Do(transition)
	if err != nil {
		_ = c.Error(err)
		c.JSON(transitionStatus(err), gin.H{"error": err.Error(), "transition": name, "state": snap})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetState returns the current snapshot.
// GET /api/v1/state
func GetState(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, q.Snapshot())
	}
}

// StartQuiz begins a new attempt.
// POST /api/v1/start
func StartQuiz(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "start", (*exam.Session).Start)
	}
}

// SelectOption records a selection on the current question.
// POST /api/v1/select
func SelectOption(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SelectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		runTransition(q, c, "select", func(s *exam.Session) error {
			return s.Select(req.Letter)
		})
	}
}

// NextQuestion moves forward.
// POST /api/v1/next
func NextQuestion(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "next", (*exam.Session).Next)
	}
}

// PreviousQuestion moves back.
// POST /api/v1/previous
func PreviousQuestion(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "previous", (*exam.Session).Previous)
	}
}

// FinishQuiz ends the attempt from the last question.
// POST /api/v1/finish
func FinishQuiz(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "finish", (*exam.Session).Finish)
	}
}

// ReviewQuestion opens a finished question.
// POST /api/v1/review/:index
func ReviewQuestion(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question index"})
			return
		}
		runTransition(q, c, "review", func(s *exam.Session) error {
			return s.Review(index)
		})
	}
}

// BackToSummary leaves review mode.
// POST /api/v1/back
func BackToSummary(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "back", (*exam.Session).BackToSummary)
	}
}

// ReturnHome discards the finished attempt.
// POST /api/v1/home
func ReturnHome(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		runTransition(q, c, "home", (*exam.Session).Home)
	}
}

// GetSummary returns the score report with a signed receipt.
// GET /api/v1/summary
func GetSummary(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := q.Summary()
		if err != nil {
			c.JSON(transitionStatus(err), gin.H{"error": "Quiz is not finished"})
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

// GetReview returns the reviewed question with the answer key.
// GET /api/v1/review
func GetReview(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		rv, err := q.Review()
		if err != nil {
			c.JSON(transitionStatus(err), gin.H{"error": "Not reviewing a question"})
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

// VerifyReceipt decodes a receipt issued by this server.
// POST /api/v1/receipts/verify
func VerifyReceipt(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReceiptVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		claims, err := q.Signer().Verify(req.Receipt)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, receipt.ErrInvalidReceipt) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"valid":         true,
			"attempt_id":    claims.ID,
			"score":         claims.Score,
			"correct_count": claims.CorrectCount,
			"total":         claims.Total,
			"passing_score": claims.PassingScore,
			"passed":        claims.Passed,
			"issued_at":     claims.IssuedAt,
		})
	}
}

// Health reports readiness of the question bank.
// GET /healthz
func Health(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, q.Health())
	}
}
