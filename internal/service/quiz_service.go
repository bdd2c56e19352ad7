package service

import (
	"context"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines question listing and answer recording.
type QuizService interface {
	// GetQuestions returns a quiz's questions with options, in order.
	GetQuestions(ctx context.Context, quizID string) (*dto.QuestionsResponse, error)

	// SubmitAnswer scores and upserts one answer for the session. Re-answering
	// the same question replaces the earlier answer.
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

// quizService implements QuizService
type quizService struct {
	questionRepo domain.QuestionRepository
	answerRepo   domain.AnswerRepository
	sessionRepo  domain.SessionRepository
	cacheClient  domain.Cache
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	sessionRepo domain.SessionRepository,
	cacheClient domain.Cache,
) QuizService {
	return &quizService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		sessionRepo:  sessionRepo,
		cacheClient:  cacheClient,
	}
}

// GetQuestions implements QuizService
func (s *quizService) GetQuestions(ctx context.Context, quizID string) (*dto.QuestionsResponse, error) {
	questions, err := s.questionRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		options := make([]dto.OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.OptionResponse{
				ID:       o.ID,
				Text:     o.Text,
				Position: o.Position,
			})
		}
		responses = append(responses, dto.QuestionResponse{
			ID:       q.ID,
			Key:      q.Key,
			Type:     string(q.Type),
			Text:     q.Text,
			Position: q.Position,
			Options:  options,
		})
	}

	return &dto.QuestionsResponse{QuizID: quizID, Questions: responses}, nil
}

// SubmitAnswer implements QuizService
func (s *quizService) SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	answer := &domain.Answer{
		SessionID:         sessionID,
		QuestionID:        question.ID,
		SelectedOptionIDs: req.SelectedOptionIDs,
		FreeText:          req.FreeText,
		AnswerScore:       domain.AnswerScore(req.SelectedOptionIDs, question.Options),
		TimeSpentMS:       req.TimeSpentMS,
	}
	if err := answer.Validate(); err != nil {
		return nil, err
	}

	if err := s.answerRepo.UpsertAnswer(ctx, answer); err != nil {
		return nil, domain.NewInternalError("Failed to save answer", err)
	}

	// A changed answer invalidates any cached result for the session.
	if s.cacheClient != nil {
		if err := s.cacheClient.Delete(ctx, resultCacheKey(sessionID)); err != nil {
			logger.Get().Warn("QuizService: failed to invalidate result cache",
				zap.Error(err), zap.String("sessionID", sessionID))
		}
	}

	return &dto.SubmitAnswerResponse{
		QuestionID:  question.ID,
		AnswerScore: answer.AnswerScore,
	}, nil
}
