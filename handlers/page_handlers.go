package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cert-quiz/exam"
	"cert-quiz/models"
	"cert-quiz/web"
)

// pageData is what every page template receives
type pageData struct {
	Health   models.HealthResponse
	Snapshot models.Snapshot
	Summary  *models.Summary
	Review   *models.ReviewView
}

// Index renders the page for the current stage.
// GET /
func Index(q *Quiz) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := pageData{
			Health:   q.Health(),
			Snapshot: q.Snapshot(),
		}
		page := web.PageHome
		switch exam.Stage(data.Snapshot.Stage) {
		case exam.StageQuiz:
			page = web.PageQuiz
		case exam.StageSummary:
			sum, err := q.Summary()
			if err == nil {
				data.Summary = &sum
				page = web.PageSummary
			}
		case exam.StageReviewing:
			rv, err := q.Review()
			if err == nil {
				data.Review = &rv
				page = web.PageReview
			}
		}
		c.HTML(http.StatusOK, page, data)
	}
}

// pageIntent applies a transition posted from a page and sends the browser back to the index.
// Unavailable transitions are no-ops; their controls are disabled on the page anyway.
func pageIntent(q *Quiz, log *zap.Logger, c *gin.Context, name string, transition func(s *exam.Session) error) {
	_, err := q.Do(transition)
	switch {
	case err == nil:
	case errors.Is(err, exam.ErrTransitionUnavailable):
		log.Debug("ignored unavailable transition", zap.String("transition", name))
	default:
		c.String(transitionStatus(err), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// PageTransition handles the form posts that carry no input.
// POST /start, /next, /previous, /finish, /back, /home
func PageTransition(q *Quiz, log *zap.Logger, name string, transition func(s *exam.Session) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageIntent(q, log, c, name, transition)
	}
}

// PageSelect handles an option click.
// POST /select
func PageSelect(q *Quiz, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SelectRequest
		if err := c.ShouldBind(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		pageIntent(q, log, c, "select", func(s *exam.Session) error {
			return s.Select(req.Letter)
		})
	}
}

// PageReview opens a question from the summary list.
// POST /review/:index
func PageReview(q *Quiz, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid question index")
			return
		}
		pageIntent(q, log, c, "review", func(s *exam.Session) error {
			return s.Review(index)
		})
	}
}
