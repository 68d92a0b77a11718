package models

// Question struct represents one multiple-choice question from the bank
type Question struct {
	Text           string   `json:"question" yaml:"question"`
	Options        []string `json:"options" yaml:"options"`                 // Each "<Letter>. <text>"
	CorrectAnswers []string `json:"correct_answers" yaml:"correct_answers"` // Subset of option letters
}

// IsMultiple reports whether the question needs more than one selected option.
func (q Question) IsMultiple() bool {
	return len(q.CorrectAnswers) > 1
}

// OptionView is one option as shown to the player
type OptionView struct {
	Letter   string `json:"letter"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct,omitempty"` // Only populated when reviewing
	Status   string `json:"status,omitempty"`  // "correct", "wrong", "neutral" when reviewing
}

// QuestionView is a rendered question for the presentation layer
type QuestionView struct {
	Index    int          `json:"index"`
	Number   int          `json:"number"` // 1-based for display
	Total    int          `json:"total"`
	Text     string       `json:"question"`
	Multiple bool         `json:"multiple"`
	Options  []OptionView `json:"options"`
}

// Snapshot is the read-only state handed to the presentation layer after every transition
type Snapshot struct {
	AttemptID       string           `json:"attempt_id,omitempty"`
	Stage           string           `json:"stage"`
	QuestionCount   int              `json:"question_count"`
	CurrentIndex    *int             `json:"current_index,omitempty"`   // Set only in the quiz stage
	ReviewingIndex  *int             `json:"reviewing_index,omitempty"` // Set only in the reviewing stage
	ProgressPercent int              `json:"progress_percent,omitempty"`
	IsFirst         bool             `json:"is_first"`
	IsLast          bool             `json:"is_last"`
	Current         *QuestionView    `json:"current,omitempty"`
	UserAnswers     map[int][]string `json:"user_answers"`
}

// SummaryItem is one row in the score report
type SummaryItem struct {
	Index   int    `json:"index"`
	Number  int    `json:"number"`
	Excerpt string `json:"excerpt"` // Question text truncated for the list
	Correct bool   `json:"correct"`
}

// Summary is the score report for a finished attempt
type Summary struct {
	AttemptID    string        `json:"attempt_id"`
	Score        float64       `json:"score"`      // Percent, one decimal
	ScoreText    string        `json:"score_text"` // Formatted as "65.0"
	CorrectCount int           `json:"correct_count"`
	Total        int           `json:"total"`
	PassingScore float64       `json:"passing_score"`
	Passed       bool          `json:"passed"` // Informational only
	Items        []SummaryItem `json:"items"`
	Receipt      string        `json:"receipt,omitempty"` // Signed by the receipt package
}

// ReviewView is a single finished question with the answer key revealed
type ReviewView struct {
	Question QuestionView `json:"question"`
	Correct  bool         `json:"correct"`
}

// SelectRequest for the select intent
type SelectRequest struct {
	Letter string `json:"letter" form:"letter" binding:"required"`
}

// ReceiptVerifyRequest for checking a receipt
type ReceiptVerifyRequest struct {
	Receipt string `json:"receipt" binding:"required"`
}

// HealthResponse for the health endpoint
type HealthResponse struct {
	Status     string `json:"status"`
	BankLoaded bool   `json:"bank_loaded"`
	BankSize   int    `json:"bank_size"`
	LoadError  string `json:"load_error,omitempty"`
}
