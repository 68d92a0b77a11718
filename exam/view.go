package exam

import (
	"math"

	"cert-quiz/models"
	"cert-quiz/utils"
)

// Snapshot captures everything the presentation layer needs to draw the current screen.
func (s *Session) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		AttemptID:     s.attemptID,
		Stage:         string(s.stage),
		QuestionCount: len(s.questions),
		UserAnswers:   make(map[int][]string, len(s.answers)),
	}
	for i := range s.answers {
		snap.UserAnswers[i] = s.Answers(i)
	}

	switch s.stage {
	case StageQuiz:
		current := s.current
		view := s.questionView(current, false)
		snap.CurrentIndex = &current
		snap.Current = &view
		snap.IsFirst = current == 0
		snap.IsLast = current == len(s.questions)-1
		snap.ProgressPercent = int(math.Round(float64(current+1) / float64(len(s.questions)) * 100))
	case StageReviewing:
		reviewing := s.reviewing
		view := s.questionView(reviewing, true)
		snap.ReviewingIndex = &reviewing
		snap.Current = &view
	}
	return snap
}

// ReviewView shows the reviewed question with every option marked against the answer key.
func (s *Session) ReviewView() (models.ReviewView, error) {
	if s.stage != StageReviewing {
		return models.ReviewView{}, ErrTransitionUnavailable
	}
	return models.ReviewView{
		Question: s.questionView(s.reviewing, true),
		Correct:  s.IsCorrect(s.reviewing),
	}, nil
}

func (s *Session) questionView(i int, reveal bool) models.QuestionView {
	q := s.questions[i]
	selected := s.answers[i]
	view := models.QuestionView{
		Index:    i,
		Number:   i + 1,
		Total:    len(s.questions),
		Text:     q.Text,
		Multiple: q.IsMultiple(),
		Options:  make([]models.OptionView, 0, len(q.Options)),
	}
	for _, option := range q.Options {
		letter := utils.OptionLetter(option)
		ov := models.OptionView{
			Letter:   letter,
			Text:     option,
			Selected: utils.ContainsString(selected, letter),
		}
		if reveal {
			ov.Correct = utils.ContainsString(q.CorrectAnswers, letter)
			switch {
			case ov.Correct:
				ov.Status = "correct"
			case ov.Selected:
				ov.Status = "wrong"
			default:
				ov.Status = "neutral"
			}
		}
		view.Options = append(view.Options, ov)
	}
	return view
}
