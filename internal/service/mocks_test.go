package service

import (
	"context"
	"time"

	"quiz-funnel/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) UpdateFunnelMetadata(ctx context.Context, id string, metadata domain.FunnelMetadata) error {
	args := m.Called(ctx, id, metadata)
	return args.Error(0)
}

func (m *MockSessionRepository) CompleteSession(ctx context.Context, id string, completedAt time.Time) error {
	args := m.Called(ctx, id, completedAt)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]domain.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionsByKeys(ctx context.Context, quizID string, keys []string) ([]domain.Question, error) {
	args := m.Called(ctx, quizID, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) SaveOption(ctx context.Context, option *domain.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) UpsertAnswer(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetAnswersBySessionID(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetAnswersForQuestions(ctx context.Context, sessionID string, questionIDs []string) ([]domain.Answer, error) {
	args := m.Called(ctx, sessionID, questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

// --- MockResultRepository ---
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) UpsertResult(ctx context.Context, result *domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetResultBySessionID(ctx context.Context, sessionID string) (*domain.Result, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

// --- MockPricingRepository ---
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) GetPriceRow(ctx context.Context, offerID string, tier domain.PricingTier) (*domain.PriceRow, error) {
	args := m.Called(ctx, offerID, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRow), args.Error(1)
}

func (m *MockPricingRepository) SavePriceRow(ctx context.Context, row *domain.PriceRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// --- MockSubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) CreateSubscription(ctx context.Context, subscription *domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockTransactionManager ---
// Runs the callback directly; repository mocks observe the calls.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
