package handlers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"cert-quiz/exam"
	"cert-quiz/ingestion"
	"cert-quiz/models"
	"cert-quiz/receipt"
)

// Quiz owns the single player's session. HTTP handlers run concurrently, so every access to the
// session goes through mu.
type Quiz struct {
	mu      sync.Mutex
	session *exam.Session
	signer  *receipt.Signer
	log     *zap.Logger
	loaded  bool
	loadErr error
}

// NewQuiz wraps a session for serving.
func NewQuiz(session *exam.Session, signer *receipt.Signer, log *zap.Logger) *Quiz {
	return &Quiz{
		session: session,
		signer:  signer,
		log:     log,
	}
}

// LoadBank fetches the question bank once and installs it. On failure the error is kept for the
// health endpoint and home page, and the quiz cannot be started.
func (q *Quiz) LoadBank(ctx context.Context, src ingestion.Source) error {
	questions, err := src.LoadQuestions(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.loadErr = err
		q.log.Error("question bank load failed", zap.Error(err))
		return err
	}
	q.session.LoadBank(questions)
	q.loaded = true
	q.loadErr = nil
	q.log.Info("question bank loaded",
		zap.Int("bank_size", len(questions)),
		zap.Int("sampled", q.session.Len()),
	)
	return nil
}

// Health reports whether the bank is ready.
func (q *Quiz) Health() models.HealthResponse {
	q.mu.Lock()
	defer q.mu.Unlock()
	resp := models.HealthResponse{
		Status:     "ok",
		BankLoaded: q.loaded,
		BankSize:   q.session.BankSize(),
	}
	if q.loadErr != nil {
		resp.Status = "degraded"
		resp.LoadError = q.loadErr.Error()
	}
	return resp
}

// Do runs one transition under the lock and returns the resulting snapshot.
// The snapshot is returned even when the transition was unavailable.
func (q *Quiz) Do(transition func(s *exam.Session) error) (models.Snapshot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	err := transition(q.session)
	return q.session.Snapshot(), err
}

// Snapshot returns the current state.
func (q *Quiz) Snapshot() models.Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.session.Snapshot()
}

// Summary builds the signed score report of the finished attempt.
func (q *Quiz) Summary() (models.Summary, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	sum, err := q.session.Summary()
	if err != nil {
		return models.Summary{}, err
	}
	token, err := q.signer.Issue(sum)
	if err != nil {
		// The report is still useful without a receipt
		q.log.Warn("failed to sign receipt", zap.String("attempt_id", sum.AttemptID), zap.Error(err))
		return sum, nil
	}
	sum.Receipt = token
	return sum, nil
}

// Review returns the reviewed question with the answer key.
func (q *Quiz) Review() (models.ReviewView, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.session.ReviewView()
}

// Signer exposes the receipt signer for verification.
func (q *Quiz) Signer() *receipt.Signer {
	return q.signer
}
