package domain

import (
	"time"
)

// QuestionType classifies a quiz question. Only some types contribute to the
// stress score; informational and anchor questions are display-only.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
	QuestionTypeScale        QuestionType = "scale"
	QuestionTypeLikert4      QuestionType = "likert_4"
	QuestionTypeInfo         QuestionType = "info"
	QuestionTypeAnchor       QuestionType = "anchor"
)

// scoringQuestionTypes is the allow-list of types that contribute to scoring.
var scoringQuestionTypes = map[QuestionType]bool{
	QuestionTypeSingleChoice: true,
	QuestionTypeMultiChoice:  true,
	QuestionTypeScale:        true,
	QuestionTypeLikert4:      true,
}

// IsScoring reports whether the question type contributes to the score.
func (t QuestionType) IsScoring() bool {
	return scoringQuestionTypes[t]
}

// Question represents a single quiz question. Immutable once published.
type Question struct {
	ID        string
	QuizID    string
	Key       string // stable slug, used by anchor configuration
	Type      QuestionType
	Text      string
	Weight    float64 // default 1.0
	Position  int
	Options   []Option
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuestion creates a new Question with the default weight.
func NewQuestion(quizID, key string, qType QuestionType, text string, position int) *Question {
	now := time.Now()
	return &Question{
		QuizID:    quizID,
		Key:       key,
		Type:      qType,
		Text:      text,
		Weight:    1.0,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewInvalidInputError("quiz ID is required")
	}
	if q.Key == "" {
		return NewInvalidInputError("question key is required")
	}
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	if q.Weight < 0 {
		return NewInvalidInputError("question weight must not be negative")
	}
	return nil
}

// OptionText returns the display text for an option ID, or "" when unknown.
func (q *Question) OptionText(optionID string) string {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Text
		}
	}
	return ""
}

// Option is one selectable answer choice carrying a score value.
type Option struct {
	ID         string
	QuestionID string
	Text       string
	Score      int // default 0
	Position   int
}

// Answer holds a session's recorded answer to one question. Unique per
// (session, question); re-answering replaces the row.
type Answer struct {
	ID                string
	SessionID         string
	QuestionID        string
	SelectedOptionIDs []string
	FreeText          string
	AnswerScore       int
	TimeSpentMS       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the answer
func (a *Answer) Validate() error {
	if a.SessionID == "" {
		return NewInvalidInputError("session ID is required")
	}
	if a.QuestionID == "" {
		return NewInvalidInputError("question ID is required")
	}
	return nil
}

// Segment is a named inclusive score range with user-facing copy.
type Segment struct {
	ID          string
	Label       string
	Description string
	MinScore    float64
	MaxScore    float64
}

// Offer is the product recommended for a matched segment.
type Offer struct {
	ID          string
	Name        string
	Description string
}

// ResultDetail is the calculation audit blob stored alongside a result.
type ResultDetail struct {
	RawScore             int     `json:"raw_score"`
	WeightedScore        float64 `json:"weighted_score"`
	AnsweredCount        int     `json:"answered_count"`
	ScoringQuestionCount int     `json:"scoring_question_count"`
	TotalWeight          float64 `json:"total_weight"`
	MaxPossibleScore     float64 `json:"max_possible_score"`
	NormalizedScore      int     `json:"normalized_score"`
	Version              string  `json:"version"`
}

// Result is the computed outcome for one session. One row per session;
// recomputation upserts, never duplicates.
type Result struct {
	ID                 string
	SessionID          string
	QuizID             string
	RawScore           int
	WeightedScore      float64
	NormalizedScore    int
	SegmentID          string
	SegmentLabel       string
	SegmentDescription string
	OfferID            string
	OfferName          string
	Detail             ResultDetail
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Session is one quiz attempt, carrying the merge-only funnel metadata bag.
type Session struct {
	ID          string
	QuizID      string
	Metadata    FunnelMetadata
	StartedAt   time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a new Session with empty metadata.
func NewSession(id, quizID string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		QuizID:    quizID,
		Metadata:  FunnelMetadata{},
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PriceRow is one price entry for an offer at a given pricing tier.
type PriceRow struct {
	ID          string
	OfferID     string
	Tier        PricingTier
	AmountCents int64
	Currency    string
	Interval    string
}

// Subscription is a created checkout row. The payment processor itself is an
// external collaborator; this only records what was requested.
type Subscription struct {
	ID          string
	SessionID   string
	OfferID     string
	Tier        PricingTier
	AmountCents int64
	Currency    string
	Status      string
	CreatedAt   time.Time
}

const SubscriptionStatusPending = "pending"
