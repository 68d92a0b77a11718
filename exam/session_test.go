package exam

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-quiz/models"
)

var (
	singleQ = models.Question{
		Text:           "Which service stores objects?",
		Options:        []string{"A. x", "B. y", "C. z"},
		CorrectAnswers: []string{"B"},
	}
	multiQ = models.Question{
		Text:           "Pick the two managed databases.",
		Options:        []string{"A. p", "B. q", "C. r"},
		CorrectAnswers: []string{"A", "C"},
	}
)

func newTestSession(t *testing.T, bank ...models.Question) *Session {
	t.Helper()
	s := NewSession(
		WithRand(rand.New(rand.NewSource(1))),
		WithIDGenerator(func() string { return "attempt-1" }),
	)
	s.LoadBank(bank)
	return s
}

// goTo moves the cursor onto the question with the given text.
func goTo(t *testing.T, s *Session, text string) {
	t.Helper()
	for s.Previous() == nil {
	}
	for {
		q, _ := s.Question(s.CurrentIndex())
		if q.Text == text {
			return
		}
		require.NoError(t, s.Next(), "question %q not found", text)
	}
}

func indexOf(t *testing.T, s *Session, text string) int {
	t.Helper()
	for i, q := range s.Questions() {
		if q.Text == text {
			return i
		}
	}
	t.Fatalf("question %q not sampled", text)
	return -1
}

func finish(t *testing.T, s *Session) {
	t.Helper()
	for s.Next() == nil {
	}
	require.NoError(t, s.Finish())
}

func TestNewSessionStartsHome(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StageHome, s.Stage())
	assert.False(t, s.Loaded())
	assert.ErrorIs(t, s.Start(), ErrTransitionUnavailable)
	assert.Equal(t, StageHome, s.Stage())
}

func TestEmptyBankCannotStart(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.Loaded())
	assert.ErrorIs(t, s.Start(), ErrTransitionUnavailable)
	assert.Equal(t, 0.0, s.Score())
}

func TestStartResetsAnswersAndIndex(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())
	assert.Equal(t, StageQuiz, s.Stage())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, "attempt-1", s.AttemptID())
	assert.Empty(t, s.Snapshot().UserAnswers)

	assert.ErrorIs(t, s.Start(), ErrTransitionUnavailable)
}

func TestSingleSelectReplaces(t *testing.T) {
	s := newTestSession(t, singleQ)
	require.NoError(t, s.Start())

	for _, letter := range []string{"A", "C", "B", "B", "A"} {
		require.NoError(t, s.Select(letter))
		assert.LessOrEqual(t, len(s.Answers(0)), 1)
	}
	assert.Equal(t, []string{"A"}, s.Answers(0))
}

func TestMultiSelectToggleInvolution(t *testing.T) {
	s := newTestSession(t, multiQ)
	require.NoError(t, s.Start())

	require.NoError(t, s.Select("A"))
	before := s.Answers(0)

	require.NoError(t, s.Select("B"))
	require.NoError(t, s.Select("B"))
	assert.Equal(t, before, s.Answers(0))

	require.NoError(t, s.Select("A"))
	assert.Empty(t, s.Answers(0))
}

func TestSelectUnknownLetter(t *testing.T) {
	s := newTestSession(t, singleQ)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("B"))

	err := s.Select("Z")
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, []string{"B"}, s.Answers(0))
}

func TestSelectOutsideQuiz(t *testing.T) {
	s := newTestSession(t, singleQ)
	assert.ErrorIs(t, s.Select("B"), ErrTransitionUnavailable)
	assert.Empty(t, s.Snapshot().UserAnswers)
}

func TestNavigationGuards(t *testing.T) {
	s := newTestSession(t, makeBank(3)...)
	require.NoError(t, s.Start())

	assert.ErrorIs(t, s.Previous(), ErrTransitionUnavailable)
	assert.Equal(t, 0, s.CurrentIndex())
	assert.ErrorIs(t, s.Finish(), ErrTransitionUnavailable)
	assert.Equal(t, StageQuiz, s.Stage())

	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	assert.Equal(t, 2, s.CurrentIndex())
	assert.ErrorIs(t, s.Next(), ErrTransitionUnavailable)
	assert.Equal(t, 2, s.CurrentIndex())

	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.CurrentIndex())
	require.NoError(t, s.Next())

	require.NoError(t, s.Finish())
	assert.Equal(t, StageSummary, s.Stage())
	assert.ErrorIs(t, s.Next(), ErrTransitionUnavailable)
	assert.ErrorIs(t, s.Previous(), ErrTransitionUnavailable)
}

func TestSingleQuestionFinishImmediately(t *testing.T) {
	s := newTestSession(t, singleQ)
	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Next(), ErrTransitionUnavailable)
	require.NoError(t, s.Finish())
}

func TestScenarioAllCorrect(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())

	goTo(t, s, singleQ.Text)
	require.NoError(t, s.Select("B"))
	goTo(t, s, multiQ.Text)
	require.NoError(t, s.Select("A"))
	require.NoError(t, s.Select("C"))
	finish(t, s)

	assert.True(t, s.IsCorrect(indexOf(t, s, singleQ.Text)))
	assert.True(t, s.IsCorrect(indexOf(t, s, multiQ.Text)))

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, "100.0", sum.ScoreText)
	assert.Equal(t, 2, sum.CorrectCount)
	assert.True(t, sum.Passed)
}

func TestScenarioPartialMulti(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())

	goTo(t, s, singleQ.Text)
	require.NoError(t, s.Select("B"))
	goTo(t, s, multiQ.Text)
	require.NoError(t, s.Select("A"))
	finish(t, s)

	assert.False(t, s.IsCorrect(indexOf(t, s, multiQ.Text)))

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, "50.0", sum.ScoreText)
	assert.False(t, sum.Passed)
}

func TestUnansweredIsIncorrect(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())
	finish(t, s)

	assert.False(t, s.IsCorrect(0))
	assert.False(t, s.IsCorrect(1))
	assert.Equal(t, 0.0, s.Score())
}

func TestSummaryUnavailableDuringQuiz(t *testing.T) {
	s := newTestSession(t, singleQ)
	require.NoError(t, s.Start())
	_, err := s.Summary()
	assert.ErrorIs(t, err, ErrTransitionUnavailable)
}

func TestReviewFlow(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())
	goTo(t, s, singleQ.Text)
	require.NoError(t, s.Select("A"))
	finish(t, s)

	idx := indexOf(t, s, singleQ.Text)
	require.NoError(t, s.Review(idx))
	assert.Equal(t, StageReviewing, s.Stage())
	got, ok := s.ReviewingIndex()
	require.True(t, ok)
	assert.Equal(t, idx, got)

	rv, err := s.ReviewView()
	require.NoError(t, err)
	assert.False(t, rv.Correct)
	statuses := map[string]string{}
	for _, o := range rv.Question.Options {
		statuses[o.Letter] = o.Status
	}
	assert.Equal(t, map[string]string{"A": "wrong", "B": "correct", "C": "neutral"}, statuses)

	assert.ErrorIs(t, s.Review(0), ErrTransitionUnavailable)

	require.NoError(t, s.BackToSummary())
	assert.Equal(t, StageSummary, s.Stage())
	_, ok = s.ReviewingIndex()
	assert.False(t, ok)
	assert.ErrorIs(t, s.BackToSummary(), ErrTransitionUnavailable)
}

func TestReviewOutOfRange(t *testing.T) {
	s := newTestSession(t, singleQ, multiQ)
	require.NoError(t, s.Start())
	finish(t, s)

	assert.ErrorIs(t, s.Review(-1), ErrQuestionOutOfRange)
	assert.ErrorIs(t, s.Review(2), ErrQuestionOutOfRange)
	assert.Equal(t, StageSummary, s.Stage())
}

func TestHomeResetsAndResamples(t *testing.T) {
	s := NewSession(WithRand(rand.New(rand.NewSource(3))), WithMaxQuestions(5))
	s.LoadBank(makeBank(50))
	assert.ErrorIs(t, s.Home(), ErrTransitionUnavailable)

	require.NoError(t, s.Start())
	first := s.Questions()
	firstID := s.AttemptID()
	require.NoError(t, s.Select("A"))
	finish(t, s)
	require.NoError(t, s.Review(0))

	require.NoError(t, s.Home())
	assert.Equal(t, StageHome, s.Stage())
	assert.Empty(t, s.AttemptID())
	assert.Empty(t, s.Snapshot().UserAnswers)
	assert.Equal(t, 50, s.BankSize())

	require.NoError(t, s.Start())
	assert.Len(t, s.Questions(), 5)
	assert.NotEqual(t, first, s.Questions())
	assert.NotEqual(t, firstID, s.AttemptID())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Empty(t, s.Answers(0))
}

func TestAnswersStayInRange(t *testing.T) {
	s := newTestSession(t, makeBank(4)...)
	require.NoError(t, s.Start())
	for i := 0; i < 10; i++ {
		_ = s.Select("A")
		_ = s.Next()
	}
	for i := range s.Snapshot().UserAnswers {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, s.Len())
	}
}

func TestSnapshotQuizStage(t *testing.T) {
	s := newTestSession(t, makeBank(4)...)
	snap := s.Snapshot()
	assert.Equal(t, "home", snap.Stage)
	assert.Nil(t, snap.Current)

	require.NoError(t, s.Start())
	require.NoError(t, s.Next())
	snap = s.Snapshot()
	require.NotNil(t, snap.CurrentIndex)
	assert.Equal(t, 1, *snap.CurrentIndex)
	assert.Nil(t, snap.ReviewingIndex)
	assert.Equal(t, 50, snap.ProgressPercent)
	assert.False(t, snap.IsFirst)
	assert.False(t, snap.IsLast)
	require.NotNil(t, snap.Current)
	assert.Equal(t, 2, snap.Current.Number)
	assert.Equal(t, "A", snap.Current.Options[0].Letter)
	assert.Equal(t, "A. yes", snap.Current.Options[0].Text)
	assert.Empty(t, snap.Current.Options[0].Status)
}
