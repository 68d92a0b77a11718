package exam

import (
	"math/rand"

	"cert-quiz/models"
)

// DefaultMaxQuestions caps the number of questions drawn for one attempt.
const DefaultMaxQuestions = 65

// SampleQuestions shuffles a copy of the bank with r and keeps at most limit questions.
// The bank itself is never reordered. A limit <= 0 keeps every question.
func SampleQuestions(bank []models.Question, limit int, r *rand.Rand) []models.Question {
	shuffled := make([]models.Question, len(bank))
	copy(shuffled, bank)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if limit <= 0 || limit > len(shuffled) {
		limit = len(shuffled)
	}
	return shuffled[:limit]
}
