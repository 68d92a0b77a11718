package exam

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"cert-quiz/models"
	"cert-quiz/utils"
)

// Stage is where a session currently is in the quiz flow.
type Stage string

const (
	StageHome      Stage = "home"
	StageQuiz      Stage = "quiz"
	StageSummary   Stage = "summary"
	StageReviewing Stage = "reviewing"
)

// DefaultPassingScore is the percentage shown as the pass mark. It never gates a transition.
const DefaultPassingScore = 70.0

var (
	// ErrTransitionUnavailable is returned when a transition is not enabled in the current state.
	// The session is left untouched.
	ErrTransitionUnavailable = errors.New("transition unavailable")
	// ErrQuestionOutOfRange is returned for a review request outside the sampled questions.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrUnknownOption is returned when a letter does not identify an option of the current question.
	ErrUnknownOption = errors.New("unknown option letter")
)

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used to sample questions.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rnd = r
	}
}

// WithMaxQuestions sets how many questions an attempt draws from the bank.
func WithMaxQuestions(n int) Option {
	return func(s *Session) {
		s.maxQuestions = n
	}
}

// WithPassingScore sets the informational pass mark.
func WithPassingScore(p float64) Option {
	return func(s *Session) {
		s.passingScore = p
	}
}

// WithIDGenerator replaces the attempt ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// Session is one player's quiz state: stage, sampled questions, answers and cursors.
// It is not safe for concurrent use; the owner serializes calls.
type Session struct {
	rnd          *rand.Rand
	maxQuestions int
	passingScore float64
	newID        func() string

	bank       []models.Question
	questions  []models.Question
	sampleUsed bool // current sample already played, next Start draws again

	stage     Stage
	attemptID string
	current   int
	answers   map[int][]string
	reviewing int // -1 outside the reviewing stage
}

// NewSession creates a session in the home stage with no questions loaded.
func NewSession(opts ...Option) *Session {
	s := &Session{
		maxQuestions: DefaultMaxQuestions,
		passingScore: DefaultPassingScore,
		newID:        uuid.NewString,
		stage:        StageHome,
		answers:      make(map[int][]string),
		reviewing:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// LoadBank installs the question bank and draws the first sample.
// Any attempt in progress is discarded and the session returns home.
func (s *Session) LoadBank(bank []models.Question) {
	s.bank = make([]models.Question, len(bank))
	copy(s.bank, bank)
	s.resample()
	s.reset()
}

func (s *Session) resample() {
	s.questions = SampleQuestions(s.bank, s.maxQuestions, s.rnd)
	s.sampleUsed = false
}

func (s *Session) reset() {
	s.stage = StageHome
	s.attemptID = ""
	s.current = 0
	s.answers = make(map[int][]string)
	s.reviewing = -1
}

// Loaded reports whether there are questions to play.
func (s *Session) Loaded() bool { return len(s.questions) > 0 }

// BankSize is the number of questions in the loaded bank.
func (s *Session) BankSize() int { return len(s.bank) }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// AttemptID identifies the attempt started by the last Start, empty at home.
func (s *Session) AttemptID() string { return s.attemptID }

// PassingScore returns the informational pass mark.
func (s *Session) PassingScore() float64 { return s.passingScore }

// Len is the number of sampled questions.
func (s *Session) Len() int { return len(s.questions) }

// Question returns the sampled question at index i.
func (s *Session) Question(i int) (models.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[i], true
}

// Questions returns a copy of the sampled questions in play order.
func (s *Session) Questions() []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// CurrentIndex is the question on screen. Meaningful only in the quiz stage.
func (s *Session) CurrentIndex() int { return s.current }

// ReviewingIndex returns the reviewed question and whether the session is reviewing.
func (s *Session) ReviewingIndex() (int, bool) {
	if s.stage != StageReviewing {
		return 0, false
	}
	return s.reviewing, true
}

// Answers returns a copy of the letters selected for question i.
func (s *Session) Answers(i int) []string {
	selected := s.answers[i]
	out := make([]string, len(selected))
	copy(out, selected)
	return out
}

// Start begins a new attempt from home. A sample that was already played is redrawn first.
func (s *Session) Start() error {
	if s.stage != StageHome || !s.Loaded() {
		return ErrTransitionUnavailable
	}
	if s.sampleUsed {
		s.resample()
	}
	s.sampleUsed = true
	s.answers = make(map[int][]string)
	s.current = 0
	s.reviewing = -1
	s.attemptID = s.newID()
	s.stage = StageQuiz
	return nil
}

// Select applies letter to the current question. Multi-answer questions toggle the letter,
// single-answer questions replace the selection.
func (s *Session) Select(letter string) error {
	if s.stage != StageQuiz {
		return ErrTransitionUnavailable
	}
	q := s.questions[s.current]
	if !utils.ContainsString(utils.OptionLetters(q.Options), letter) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, letter)
	}

	prev := s.answers[s.current]
	var updated []string
	if q.IsMultiple() {
		if utils.ContainsString(prev, letter) {
			updated = utils.RemoveString(prev, letter)
		} else {
			updated = append(append([]string{}, prev...), letter)
		}
	} else {
		updated = []string{letter}
	}
	s.answers[s.current] = updated
	return nil
}

// Next moves to the following question. Unavailable on the last one.
func (s *Session) Next() error {
	if s.stage != StageQuiz || s.current >= len(s.questions)-1 {
		return ErrTransitionUnavailable
	}
	s.current++
	return nil
}

// Previous moves back one question. Unavailable on the first one.
func (s *Session) Previous() error {
	if s.stage != StageQuiz || s.current == 0 {
		return ErrTransitionUnavailable
	}
	s.current--
	return nil
}

// Finish ends the attempt. Only enabled on the last question.
func (s *Session) Finish() error {
	if s.stage != StageQuiz || s.current != len(s.questions)-1 {
		return ErrTransitionUnavailable
	}
	s.stage = StageSummary
	return nil
}

// Review opens question index of the finished attempt with the answer key revealed.
func (s *Session) Review(index int) error {
	if s.stage != StageSummary {
		return ErrTransitionUnavailable
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrQuestionOutOfRange, index, len(s.questions))
	}
	s.reviewing = index
	s.stage = StageReviewing
	return nil
}

// BackToSummary leaves the reviewed question.
func (s *Session) BackToSummary() error {
	if s.stage != StageReviewing {
		return ErrTransitionUnavailable
	}
	s.reviewing = -1
	s.stage = StageSummary
	return nil
}

// Home discards the finished attempt. The bank stays loaded.
func (s *Session) Home() error {
	if s.stage != StageSummary && s.stage != StageReviewing {
		return ErrTransitionUnavailable
	}
	s.reset()
	return nil
}
