package service

import (
	"context"

	"quiz-funnel/internal/config"
	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
)

// InsightService builds display-ready insight cards from anchor answers.
type InsightService interface {
	GetInsights(ctx context.Context, sessionID, quizID string) (*dto.InsightsResponse, error)
}

// insightService implements InsightService
type insightService struct {
	questionRepo domain.QuestionRepository
	answerRepo   domain.AnswerRepository
	cfg          *config.Config
}

// NewInsightService creates a new instance of insightService
func NewInsightService(
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	cfg *config.Config,
) InsightService {
	return &insightService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		cfg:          cfg,
	}
}

func anchorsFromConfig(cfg *config.Config) []domain.InsightAnchor {
	anchors := make([]domain.InsightAnchor, 0, len(cfg.Funnel.Anchors))
	for _, a := range cfg.Funnel.Anchors {
		anchors = append(anchors, domain.InsightAnchor{
			Key:      a.Key,
			Label:    a.Label,
			Icon:     a.Icon,
			Fallback: a.Fallback,
		})
	}
	return anchors
}

// GetInsights implements InsightService. Lookup failures for individual
// anchors degrade to fallback text; only a hard repository error surfaces.
func (s *insightService) GetInsights(ctx context.Context, sessionID, quizID string) (*dto.InsightsResponse, error) {
	anchors := anchorsFromConfig(s.cfg)

	keys := make([]string, 0, len(anchors))
	for _, a := range anchors {
		keys = append(keys, a.Key)
	}

	questions, err := s.questionRepo.GetQuestionsByKeys(ctx, quizID, keys)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load anchor questions", err)
	}

	questionIDs := make([]string, 0, len(questions))
	questionsByID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
		questionsByID[q.ID] = q
	}

	answers, err := s.answerRepo.GetAnswersForQuestions(ctx, sessionID, questionIDs)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load anchor answers", err)
	}

	anchorAnswers := make([]domain.AnchorAnswer, 0, len(answers))
	for _, a := range answers {
		question, ok := questionsByID[a.QuestionID]
		if !ok {
			continue
		}
		anchorAnswers = append(anchorAnswers, domain.AnchorAnswer{
			QuestionKey: question.Key,
			AnswerText:  resolveAnswerText(question, a),
		})
	}

	cards := domain.BuildInsightCards(anchors, anchorAnswers)
	responses := make([]dto.InsightCardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, dto.InsightCardResponse{
			Key:   c.Key,
			Label: c.Label,
			Icon:  c.Icon,
			Text:  c.Text,
		})
	}
	return &dto.InsightsResponse{SessionID: sessionID, Cards: responses}, nil
}

// resolveAnswerText prefers free text; otherwise it joins the display texts
// of the selected options (capped at two).
func resolveAnswerText(question domain.Question, answer domain.Answer) string {
	if answer.FreeText != "" {
		return answer.FreeText
	}
	texts := make([]string, 0, len(answer.SelectedOptionIDs))
	for _, optionID := range answer.SelectedOptionIDs {
		texts = append(texts, question.OptionText(optionID))
	}
	return domain.JoinOptionTexts(texts)
}
