package service

import (
	"context"
	"encoding/json"

	"quiz-funnel/internal/cache"
	"quiz-funnel/internal/config"
	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResultService defines the result-calculation operations.
type ResultService interface {
	// ComputeResult computes and persists the session's result. Idempotent:
	// when a result already exists it is returned unchanged.
	ComputeResult(ctx context.Context, sessionID, quizID string) (*dto.ResultResponse, error)

	// GetResult returns the session's computed result.
	GetResult(ctx context.Context, sessionID string) (*dto.ResultResponse, error)
}

// resultService implements ResultService
type resultService struct {
	answerRepo   domain.AnswerRepository
	questionRepo domain.QuestionRepository
	resultRepo   domain.ResultRepository
	cacheClient  domain.Cache
	cfg          *config.Config
}

// NewResultService creates a new instance of resultService
func NewResultService(
	answerRepo domain.AnswerRepository,
	questionRepo domain.QuestionRepository,
	resultRepo domain.ResultRepository,
	cacheClient domain.Cache,
	cfg *config.Config,
) ResultService {
	return &resultService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		cacheClient:  cacheClient,
		cfg:          cfg,
	}
}

func resultCacheKey(sessionID string) string {
	return cache.GenerateCacheKey("funnel", "result", sessionID)
}

// segmentsFromConfig converts the configured segments for a quiz. A quiz
// without configuration yields no segments; computation then degrades to an
// empty segment rather than erroring.
func segmentsFromConfig(quizCfg config.QuizFunnelConfig) []domain.Segment {
	segments := make([]domain.Segment, 0, len(quizCfg.Segments))
	for _, s := range quizCfg.Segments {
		segments = append(segments, domain.Segment{
			ID:          s.ID,
			Label:       s.Label,
			Description: s.Description,
			MinScore:    s.MinScore,
			MaxScore:    s.MaxScore,
		})
	}
	return segments
}

func offersFromConfig(quizCfg config.QuizFunnelConfig) map[string]domain.Offer {
	offers := make(map[string]domain.Offer, len(quizCfg.Offers))
	for segmentID, o := range quizCfg.Offers {
		offers[segmentID] = domain.Offer{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
		}
	}
	return offers
}

// ComputeResult implements ResultService
func (s *resultService) ComputeResult(ctx context.Context, sessionID, quizID string) (*dto.ResultResponse, error) {
	existing, err := s.resultRepo.GetResultBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check for existing result", err)
	}
	if existing != nil {
		logger.Get().Info("Result already computed, returning existing",
			zap.String("sessionID", sessionID))
		return toResultResponse(existing), nil
	}

	var answers []domain.Answer
	var questions []domain.Question

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		answers, err = s.answerRepo.GetAnswersBySessionID(gctx, sessionID)
		if err != nil {
			return domain.NewInternalError("Failed to load answers", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		questions, err = s.questionRepo.GetQuestionsByQuizID(gctx, quizID)
		if err != nil {
			return domain.NewInternalError("Failed to load questions", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quizCfg, _ := s.cfg.Funnel.Quiz(quizID)

	summary := domain.Aggregate(questions, answers)
	result := &domain.Result{
		SessionID:       sessionID,
		QuizID:          quizID,
		RawScore:        summary.RawScore,
		WeightedScore:   summary.WeightedScore,
		NormalizedScore: summary.NormalizedScore,
		Detail: domain.ResultDetail{
			RawScore:             summary.RawScore,
			WeightedScore:        summary.WeightedScore,
			AnsweredCount:        summary.AnsweredCount,
			ScoringQuestionCount: summary.ScoringQuestionCount,
			TotalWeight:          summary.TotalWeight,
			MaxPossibleScore:     summary.MaxPossibleScore,
			NormalizedScore:      summary.NormalizedScore,
			Version:              domain.ResultVersion,
		},
	}

	if segment, ok := domain.MatchSegment(segmentsFromConfig(quizCfg), summary.WeightedScore); ok {
		result.SegmentID = segment.ID
		result.SegmentLabel = segment.Label
		result.SegmentDescription = segment.Description
	}
	if offer, ok := domain.PickOffer(offersFromConfig(quizCfg), result.SegmentID); ok {
		result.OfferID = offer.ID
		result.OfferName = offer.Name
	}

	if err := s.resultRepo.UpsertResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to persist result", err)
	}

	response := toResultResponse(result)
	s.putResultToCache(ctx, sessionID, response)
	return response, nil
}

// GetResult implements ResultService
func (s *resultService) GetResult(ctx context.Context, sessionID string) (*dto.ResultResponse, error) {
	if cached := s.getResultFromCache(ctx, sessionID); cached != nil {
		return cached, nil
	}

	result, err := s.resultRepo.GetResultBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load result", err)
	}
	if result == nil {
		return nil, domain.NewResultNotFoundError(sessionID)
	}

	response := toResultResponse(result)
	s.putResultToCache(ctx, sessionID, response)
	return response, nil
}

// getResultFromCache returns nil on miss or any cache failure; cache problems
// never fail the request.
func (s *resultService) getResultFromCache(ctx context.Context, sessionID string) *dto.ResultResponse {
	if s.cacheClient == nil {
		return nil
	}
	raw, err := s.cacheClient.Get(ctx, resultCacheKey(sessionID))
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("ResultService: cache read failed",
				zap.Error(err), zap.String("sessionID", sessionID))
		}
		return nil
	}
	var response dto.ResultResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		logger.Get().Warn("ResultService: corrupt cache entry",
			zap.Error(err), zap.String("sessionID", sessionID))
		return nil
	}
	return &response
}

func (s *resultService) putResultToCache(ctx context.Context, sessionID string, response *dto.ResultResponse) {
	if s.cacheClient == nil {
		return
	}
	raw, err := json.Marshal(response)
	if err != nil {
		logger.Get().Warn("ResultService: failed to serialize result for cache",
			zap.Error(err), zap.String("sessionID", sessionID))
		return
	}
	if err := s.cacheClient.Set(ctx, resultCacheKey(sessionID), string(raw), s.cfg.Funnel.ResultCacheTTL); err != nil {
		logger.Get().Warn("ResultService: cache write failed",
			zap.Error(err), zap.String("sessionID", sessionID))
	}
}

func toResultResponse(result *domain.Result) *dto.ResultResponse {
	return &dto.ResultResponse{
		SessionID:       result.SessionID,
		QuizID:          result.QuizID,
		RawScore:        result.RawScore,
		WeightedScore:   result.WeightedScore,
		NormalizedScore: result.NormalizedScore,
		Segment: dto.SegmentResponse{
			ID:          result.SegmentID,
			Label:       result.SegmentLabel,
			Description: result.SegmentDescription,
		},
		Offer: dto.OfferResponse{
			ID:   result.OfferID,
			Name: result.OfferName,
		},
		Detail: dto.ResultDetailResponse{
			RawScore:             result.Detail.RawScore,
			WeightedScore:        result.Detail.WeightedScore,
			AnsweredCount:        result.Detail.AnsweredCount,
			ScoringQuestionCount: result.Detail.ScoringQuestionCount,
			TotalWeight:          result.Detail.TotalWeight,
			MaxPossibleScore:     result.Detail.MaxPossibleScore,
			NormalizedScore:      result.Detail.NormalizedScore,
			Version:              result.Detail.Version,
		},
	}
}
