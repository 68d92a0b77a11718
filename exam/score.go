package exam

import (
	"fmt"
	"math"

	"cert-quiz/models"
	"cert-quiz/utils"
)

// summaryExcerptLen is how much of a question's text the score report shows.
const summaryExcerptLen = 100

// IsCorrect reports whether selected is exactly the question's answer key.
func IsCorrect(q models.Question, selected []string) bool {
	return utils.SameSet(selected, q.CorrectAnswers)
}

// Score is the percentage of correct answers rounded to one decimal. An empty attempt scores 0.
func Score(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}

// FormatScore renders a score with exactly one decimal.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// IsCorrect reports whether the answer recorded for question i is right.
// Unanswered questions are wrong.
func (s *Session) IsCorrect(i int) bool {
	q, ok := s.Question(i)
	if !ok {
		return false
	}
	return IsCorrect(q, s.answers[i])
}

// CorrectCount counts the correctly answered questions.
func (s *Session) CorrectCount() int {
	n := 0
	for i := range s.questions {
		if s.IsCorrect(i) {
			n++
		}
	}
	return n
}

// Score is the current attempt's percentage, recomputed from the answers.
func (s *Session) Score() float64 {
	return Score(s.CorrectCount(), len(s.questions))
}

// Passed compares the score to the pass mark. Informational only.
func (s *Session) Passed() bool {
	return s.Score() >= s.passingScore
}

// Summary builds the score report. Available once the attempt is finished.
func (s *Session) Summary() (models.Summary, error) {
	if s.stage != StageSummary && s.stage != StageReviewing {
		return models.Summary{}, ErrTransitionUnavailable
	}
	correct := s.CorrectCount()
	score := Score(correct, len(s.questions))
	items := make([]models.SummaryItem, 0, len(s.questions))
	for i, q := range s.questions {
		items = append(items, models.SummaryItem{
			Index:   i,
			Number:  i + 1,
			Excerpt: utils.Truncate(q.Text, summaryExcerptLen),
			Correct: s.IsCorrect(i),
		})
	}
	return models.Summary{
		AttemptID:    s.attemptID,
		Score:        score,
		ScoreText:    FormatScore(score),
		CorrectCount: correct,
		Total:        len(s.questions),
		PassingScore: s.passingScore,
		Passed:       score >= s.passingScore,
		Items:        items,
	}, nil
}
