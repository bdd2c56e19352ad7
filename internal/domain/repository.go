package domain

import (
	"context"
	"time"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// CreateSession persists a new session with empty funnel metadata
	CreateSession(ctx context.Context, session *Session) error

	// GetSessionByID retrieves a session, or nil when absent
	GetSessionByID(ctx context.Context, id string) (*Session, error)

	// UpdateFunnelMetadata replaces the stored metadata blob with the
	// already-merged metadata
	UpdateFunnelMetadata(ctx context.Context, id string, metadata FunnelMetadata) error

	// CompleteSession stamps the session's completion time
	CompleteSession(ctx context.Context, id string, completedAt time.Time) error
}

// QuestionRepository defines the interface for question and option persistence
type QuestionRepository interface {
	// GetQuestionsByQuizID returns a quiz's questions with options, ordered
	// by position
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]Question, error)

	// GetQuestionByID retrieves one question with its options, or nil
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// GetQuestionsByKeys returns the questions matching the given stable
	// keys, with options
	GetQuestionsByKeys(ctx context.Context, quizID string, keys []string) ([]Question, error)

	// SaveQuestion persists a new question
	SaveQuestion(ctx context.Context, question *Question) error

	// SaveOption persists a new option
	SaveOption(ctx context.Context, option *Option) error
}

// AnswerRepository defines the interface for answer persistence
type AnswerRepository interface {
	// UpsertAnswer inserts or replaces the answer for (session, question)
	UpsertAnswer(ctx context.Context, answer *Answer) error

	// GetAnswersBySessionID returns all answers recorded for a session
	GetAnswersBySessionID(ctx context.Context, sessionID string) ([]Answer, error)

	// GetAnswersForQuestions returns the session's answers to the given
	// questions only
	GetAnswersForQuestions(ctx context.Context, sessionID string, questionIDs []string) ([]Answer, error)
}

// ResultRepository defines the interface for result persistence
type ResultRepository interface {
	// UpsertResult inserts or replaces the single result row for a session
	UpsertResult(ctx context.Context, result *Result) error

	// GetResultBySessionID retrieves a session's result, or nil when absent
	GetResultBySessionID(ctx context.Context, sessionID string) (*Result, error)
}

// PricingRepository defines the interface for pricing tier lookups
type PricingRepository interface {
	// GetPriceRow returns the price row for an offer at a tier, or nil
	GetPriceRow(ctx context.Context, offerID string, tier PricingTier) (*PriceRow, error)

	// SavePriceRow persists a new price row
	SavePriceRow(ctx context.Context, row *PriceRow) error
}

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	// CreateSubscription persists a new subscription row
	CreateSubscription(ctx context.Context, subscription *Subscription) error
}

// TransactionManager runs a function inside a database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
