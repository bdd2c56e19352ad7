package dto

import "time"

// ErrorResponse is the minimal error body handlers return directly.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StartSessionRequest starts a new quiz session.
type StartSessionRequest struct {
	QuizID string `json:"quiz_id"`
}

// SessionResponse describes a session and its funnel state.
type SessionResponse struct {
	ID            string                 `json:"id"`
	QuizID        string                 `json:"quiz_id"`
	CurrentScreen string                 `json:"current_screen,omitempty"`
	Metadata      map[string]interface{} `json:"metadata"`
	StartedAt     time.Time              `json:"started_at"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
}

// UpdateFunnelRequest merges a metadata patch into the session. The patch is
// merged, never replaces, the stored bag.
type UpdateFunnelRequest struct {
	Metadata map[string]interface{} `json:"metadata"`
	Screen   string                 `json:"screen,omitempty"`
}

// OptionResponse is one selectable choice. Score values stay server-side.
type OptionResponse struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// QuestionResponse is one quiz question with its options.
type QuestionResponse struct {
	ID       string           `json:"id"`
	Key      string           `json:"key"`
	Type     string           `json:"type"`
	Text     string           `json:"text"`
	Position int              `json:"position"`
	Options  []OptionResponse `json:"options"`
}

// QuestionsResponse lists a quiz's questions in order.
type QuestionsResponse struct {
	QuizID    string             `json:"quiz_id"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmitAnswerRequest records (or replaces) one answer.
type SubmitAnswerRequest struct {
	QuestionID        string   `json:"question_id"`
	SelectedOptionIDs []string `json:"selected_option_ids,omitempty"`
	FreeText          string   `json:"free_text,omitempty"`
	TimeSpentMS       int      `json:"time_spent_ms,omitempty"`
}

// SubmitAnswerResponse echoes the derived answer score.
type SubmitAnswerResponse struct {
	QuestionID  string `json:"question_id"`
	AnswerScore int    `json:"answer_score"`
}

// SegmentResponse is the matched stress stage.
type SegmentResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// OfferResponse is the recommended product for the matched segment.
type OfferResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ResultDetailResponse is the calculation audit blob.
type ResultDetailResponse struct {
	RawScore             int     `json:"raw_score"`
	WeightedScore        float64 `json:"weighted_score"`
	AnsweredCount        int     `json:"answered_count"`
	ScoringQuestionCount int     `json:"scoring_question_count"`
	TotalWeight          float64 `json:"total_weight"`
	MaxPossibleScore     float64 `json:"max_possible_score"`
	NormalizedScore      int     `json:"normalized_score"`
	Version              string  `json:"version"`
}

// ResultResponse is a session's computed result.
type ResultResponse struct {
	SessionID       string               `json:"session_id"`
	QuizID          string               `json:"quiz_id"`
	RawScore        int                  `json:"raw_score"`
	WeightedScore   float64              `json:"weighted_score"`
	NormalizedScore int                  `json:"normalized_score"`
	Segment         SegmentResponse      `json:"segment"`
	Offer           OfferResponse        `json:"offer"`
	Detail          ResultDetailResponse `json:"detail"`
}

// ComputeResultRequest triggers result computation for a session.
type ComputeResultRequest struct {
	QuizID string `json:"quiz_id"`
}

// InsightCardResponse is one display-ready insight.
type InsightCardResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Text  string `json:"text"`
}

// InsightsResponse lists the insight cards in configuration order.
type InsightsResponse struct {
	SessionID string                `json:"session_id"`
	Cards     []InsightCardResponse `json:"cards"`
}

// ProjectionResponse is the projected outcome for a time commitment.
type ProjectionResponse struct {
	TargetScore         int       `json:"target_score"`
	DisplayCurrentScore int       `json:"display_current_score"`
	DisplayTargetScore  int       `json:"display_target_score"`
	ReductionPercent    int       `json:"reduction_percent"`
	TargetDate          time.Time `json:"target_date"`
}

// CheckoutRequest creates a subscription for the given offer at the
// client-reported pricing tier.
type CheckoutRequest struct {
	OfferID string `json:"offer_id"`
	Tier    string `json:"tier"`
}

// CheckoutResponse describes the created subscription.
type CheckoutResponse struct {
	SubscriptionID string `json:"subscription_id"`
	OfferID        string `json:"offer_id"`
	Tier           string `json:"tier"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
}

// ScreenResponse is the adjacent screen lookup result.
type ScreenResponse struct {
	Screen string `json:"screen,omitempty"`
	End    bool   `json:"end"`
}
