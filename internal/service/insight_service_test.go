package service

import (
	"context"
	"errors"
	"testing"

	"quiz-funnel/internal/config"
	"quiz-funnel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTestConfig() *config.Config {
	return &config.Config{
		Funnel: config.FunnelConfig{
			Anchors: []config.AnchorConfig{
				{Key: "main_trigger", Label: "Your main trigger", Icon: "bolt", Fallback: "daily pressure"},
				{Key: "goal", Label: "Your goal", Icon: "target", Fallback: "feeling in control"},
			},
		},
	}
}

func TestInsightService_GetInsights(t *testing.T) {
	ctx := context.Background()

	t.Run("builds cards from anchor answers in configured order", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		answerRepo := new(MockAnswerRepository)
		svc := NewInsightService(questionRepo, answerRepo, insightTestConfig())

		questionRepo.On("GetQuestionsByKeys", ctx, "stress-check", []string{"main_trigger", "goal"}).
			Return([]domain.Question{
				{
					ID: "q5", Key: "main_trigger", Type: domain.QuestionTypeAnchor,
					Options: []domain.Option{
						{ID: "q5o1", Text: "Work deadlines"},
						{ID: "q5o2", Text: "Family conflicts"},
					},
				},
				{ID: "q6", Key: "goal", Type: domain.QuestionTypeAnchor},
			}, nil).Once()
		answerRepo.On("GetAnswersForQuestions", ctx, "sess-1", []string{"q5", "q6"}).
			Return([]domain.Answer{
				{QuestionID: "q5", SelectedOptionIDs: []string{"q5o1", "q5o2"}},
				{QuestionID: "q6", FreeText: "sleep through the night"},
			}, nil).Once()

		response, err := svc.GetInsights(ctx, "sess-1", "stress-check")

		require.NoError(t, err)
		require.Len(t, response.Cards, 2)
		assert.Equal(t, "main_trigger", response.Cards[0].Key)
		assert.Equal(t, "Work deadlines, Family conflicts", response.Cards[0].Text)
		assert.Equal(t, "sleep through the night", response.Cards[1].Text)
	})

	t.Run("missing anchor answer falls back to configured text", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		answerRepo := new(MockAnswerRepository)
		svc := NewInsightService(questionRepo, answerRepo, insightTestConfig())

		questionRepo.On("GetQuestionsByKeys", ctx, "stress-check", []string{"main_trigger", "goal"}).
			Return([]domain.Question{}, nil).Once()
		answerRepo.On("GetAnswersForQuestions", ctx, "sess-1", []string{}).
			Return([]domain.Answer{}, nil).Once()

		response, err := svc.GetInsights(ctx, "sess-1", "stress-check")

		require.NoError(t, err)
		require.Len(t, response.Cards, 2)
		assert.Equal(t, "daily pressure", response.Cards[0].Text)
		assert.Equal(t, "feeling in control", response.Cards[1].Text)
	})

	t.Run("repository failure surfaces as internal error", func(t *testing.T) {
		questionRepo := new(MockQuestionRepository)
		svc := NewInsightService(questionRepo, new(MockAnswerRepository), insightTestConfig())

		questionRepo.On("GetQuestionsByKeys", ctx, "stress-check", []string{"main_trigger", "goal"}).
			Return(nil, errors.New("db down")).Once()

		_, err := svc.GetInsights(ctx, "sess-1", "stress-check")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
	})
}
