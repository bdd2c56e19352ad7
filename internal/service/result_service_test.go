package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quiz-funnel/internal/config"
	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFunnelTestConfig() *config.Config {
	return &config.Config{
		Funnel: config.FunnelConfig{
			ResultCacheTTL: 10 * time.Minute,
			Quizzes: map[string]config.QuizFunnelConfig{
				"stress-check": {
					Segments: []config.SegmentConfig{
						{ID: "low", Label: "Low stress", MinScore: 0, MaxScore: 8},
						{ID: "moderate", Label: "Moderate stress", MinScore: 9, MaxScore: 16},
						{ID: "high", Label: "High stress", MinScore: 17, MaxScore: 24},
					},
					Offers: map[string]config.OfferConfig{
						"low":      {ID: "offer-calm", Name: "Calm Starter"},
						"moderate": {ID: "offer-reset", Name: "Stress Reset"},
						"high":     {ID: "offer-intensive", Name: "Intensive Plan"},
					},
				},
			},
		},
	}
}

func scoringQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "q1", QuizID: "stress-check", Key: "sleep", Type: domain.QuestionTypeSingleChoice, Weight: 1.0,
			Options: []domain.Option{
				{ID: "q1o1", Score: 0},
				{ID: "q1o2", Score: 2},
			},
		},
		{
			ID: "q2", QuizID: "stress-check", Key: "focus", Type: domain.QuestionTypeLikert4, Weight: 2.0,
			Options: []domain.Option{
				{ID: "q2o1", Score: 1},
				{ID: "q2o2", Score: 3},
			},
		},
		{ID: "q3", QuizID: "stress-check", Key: "intro", Type: domain.QuestionTypeInfo, Weight: 1.0},
	}
}

func TestResultService_ComputeResult(t *testing.T) {
	ctx := context.Background()

	t.Run("computes segment, offer and scores from answers", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		questionRepo := new(MockQuestionRepository)
		resultRepo := new(MockResultRepository)
		cacheClient := new(MockCache)
		svc := NewResultService(answerRepo, questionRepo, resultRepo, cacheClient, newFunnelTestConfig())

		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(nil, nil).Once()
		answerRepo.On("GetAnswersBySessionID", mock.Anything, "sess-1").Return([]domain.Answer{
			{SessionID: "sess-1", QuestionID: "q1", SelectedOptionIDs: []string{"q1o2"}, AnswerScore: 2},
			{SessionID: "sess-1", QuestionID: "q2", SelectedOptionIDs: []string{"q2o1"}, AnswerScore: 1},
		}, nil).Once()
		questionRepo.On("GetQuestionsByQuizID", mock.Anything, "stress-check").Return(scoringQuestions(), nil).Once()

		var persisted *domain.Result
		resultRepo.On("UpsertResult", ctx, mock.AnythingOfType("*domain.Result")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*domain.Result) }).
			Return(nil).Once()
		cacheClient.On("Set", ctx, resultCacheKey("sess-1"), mock.AnythingOfType("string"), 10*time.Minute).Return(nil).Once()

		response, err := svc.ComputeResult(ctx, "sess-1", "stress-check")

		require.NoError(t, err)
		// raw 2+1=3, weighted 1*2+2*1=4, max 3*3=9 -> normalized 44
		assert.Equal(t, 3, response.RawScore)
		assert.Equal(t, 4.0, response.WeightedScore)
		assert.Equal(t, 44, response.NormalizedScore)
		assert.Equal(t, "low", response.Segment.ID)
		assert.Equal(t, "offer-calm", response.Offer.ID)
		assert.Equal(t, domain.ResultVersion, response.Detail.Version)

		require.NotNil(t, persisted)
		assert.Equal(t, "sess-1", persisted.SessionID)
		assert.Equal(t, 2, persisted.Detail.AnsweredCount)
		assert.Equal(t, 2, persisted.Detail.ScoringQuestionCount)

		resultRepo.AssertExpectations(t)
		answerRepo.AssertExpectations(t)
		questionRepo.AssertExpectations(t)
		cacheClient.AssertExpectations(t)
	})

	t.Run("returns existing result without recomputing", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		questionRepo := new(MockQuestionRepository)
		resultRepo := new(MockResultRepository)
		svc := NewResultService(answerRepo, questionRepo, resultRepo, nil, newFunnelTestConfig())

		existing := &domain.Result{
			SessionID:     "sess-1",
			QuizID:        "stress-check",
			RawScore:      7,
			WeightedScore: 11,
			SegmentID:     "moderate",
		}
		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(existing, nil).Once()

		response, err := svc.ComputeResult(ctx, "sess-1", "stress-check")

		require.NoError(t, err)
		assert.Equal(t, 7, response.RawScore)
		assert.Equal(t, "moderate", response.Segment.ID)
		resultRepo.AssertExpectations(t)
		answerRepo.AssertNotCalled(t, "GetAnswersBySessionID", mock.Anything, mock.Anything)
		resultRepo.AssertNotCalled(t, "UpsertResult", mock.Anything, mock.Anything)
	})

	t.Run("unconfigured quiz degrades to empty segment and offer", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		questionRepo := new(MockQuestionRepository)
		resultRepo := new(MockResultRepository)
		svc := NewResultService(answerRepo, questionRepo, resultRepo, nil, newFunnelTestConfig())

		resultRepo.On("GetResultBySessionID", ctx, "sess-2").Return(nil, nil).Once()
		answerRepo.On("GetAnswersBySessionID", mock.Anything, "sess-2").Return([]domain.Answer{}, nil).Once()
		questionRepo.On("GetQuestionsByQuizID", mock.Anything, "other-quiz").Return([]domain.Question{}, nil).Once()
		resultRepo.On("UpsertResult", ctx, mock.AnythingOfType("*domain.Result")).Return(nil).Once()

		response, err := svc.ComputeResult(ctx, "sess-2", "other-quiz")

		require.NoError(t, err)
		assert.Empty(t, response.Segment.ID)
		assert.Empty(t, response.Offer.ID)
		assert.Equal(t, 0, response.NormalizedScore)
	})

	t.Run("answer fetch failure surfaces as internal error", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		questionRepo := new(MockQuestionRepository)
		resultRepo := new(MockResultRepository)
		svc := NewResultService(answerRepo, questionRepo, resultRepo, nil, newFunnelTestConfig())

		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(nil, nil).Once()
		answerRepo.On("GetAnswersBySessionID", mock.Anything, "sess-1").Return(nil, errors.New("db down")).Once()
		questionRepo.On("GetQuestionsByQuizID", mock.Anything, "stress-check").Return([]domain.Question{}, nil).Maybe()

		_, err := svc.ComputeResult(ctx, "sess-1", "stress-check")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
		resultRepo.AssertNotCalled(t, "UpsertResult", mock.Anything, mock.Anything)
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		answerRepo := new(MockAnswerRepository)
		questionRepo := new(MockQuestionRepository)
		resultRepo := new(MockResultRepository)
		cacheClient := new(MockCache)
		svc := NewResultService(answerRepo, questionRepo, resultRepo, cacheClient, newFunnelTestConfig())

		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(nil, nil).Once()
		answerRepo.On("GetAnswersBySessionID", mock.Anything, "sess-1").Return([]domain.Answer{}, nil).Once()
		questionRepo.On("GetQuestionsByQuizID", mock.Anything, "stress-check").Return(scoringQuestions(), nil).Once()
		resultRepo.On("UpsertResult", ctx, mock.AnythingOfType("*domain.Result")).Return(nil).Once()
		cacheClient.On("Set", ctx, resultCacheKey("sess-1"), mock.AnythingOfType("string"), mock.Anything).
			Return(errors.New("redis gone")).Once()

		_, err := svc.ComputeResult(ctx, "sess-1", "stress-check")

		require.NoError(t, err)
		cacheClient.AssertExpectations(t)
	})
}

func TestResultService_GetResult(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from cache when present", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheClient := new(MockCache)
		svc := NewResultService(nil, nil, resultRepo, cacheClient, newFunnelTestConfig())

		cached := dto.ResultResponse{SessionID: "sess-1", NormalizedScore: 44}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)
		cacheClient.On("Get", ctx, resultCacheKey("sess-1")).Return(string(raw), nil).Once()

		response, err := svc.GetResult(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, 44, response.NormalizedScore)
		resultRepo.AssertNotCalled(t, "GetResultBySessionID", mock.Anything, mock.Anything)
	})

	t.Run("falls back to repository on cache miss", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheClient := new(MockCache)
		svc := NewResultService(nil, nil, resultRepo, cacheClient, newFunnelTestConfig())

		cacheClient.On("Get", ctx, resultCacheKey("sess-1")).Return("", domain.ErrCacheMiss).Once()
		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(&domain.Result{
			SessionID: "sess-1", SegmentID: "high",
		}, nil).Once()
		cacheClient.On("Set", ctx, resultCacheKey("sess-1"), mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

		response, err := svc.GetResult(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, "high", response.Segment.ID)
		resultRepo.AssertExpectations(t)
	})

	t.Run("corrupt cache entry falls through to repository", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		cacheClient := new(MockCache)
		svc := NewResultService(nil, nil, resultRepo, cacheClient, newFunnelTestConfig())

		cacheClient.On("Get", ctx, resultCacheKey("sess-1")).Return("{not json", nil).Once()
		resultRepo.On("GetResultBySessionID", ctx, "sess-1").Return(&domain.Result{SessionID: "sess-1"}, nil).Once()
		cacheClient.On("Set", ctx, resultCacheKey("sess-1"), mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

		_, err := svc.GetResult(ctx, "sess-1")

		require.NoError(t, err)
		resultRepo.AssertExpectations(t)
	})

	t.Run("missing result returns not found", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		svc := NewResultService(nil, nil, resultRepo, nil, newFunnelTestConfig())

		resultRepo.On("GetResultBySessionID", ctx, "sess-9").Return(nil, nil).Once()

		_, err := svc.GetResult(ctx, "sess-9")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeResultNotFound, domainErr.Code)
	})
}
