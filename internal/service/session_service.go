package service

import (
	"context"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"
	"quiz-funnel/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService defines session and funnel-metadata operations.
type SessionService interface {
	// StartSession creates a new session with empty funnel metadata.
	StartSession(ctx context.Context, quizID string) (*dto.SessionResponse, error)

	// GetSession returns the session and its funnel state.
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)

	// UpdateFunnel merges a metadata patch (and optional screen advance)
	// into the session. The stored bag is never fully overwritten.
	UpdateFunnel(ctx context.Context, sessionID string, req *dto.UpdateFunnelRequest) (*dto.SessionResponse, error)
}

// sessionService implements SessionService
type sessionService struct {
	sessionRepo domain.SessionRepository
}

// NewSessionService creates a new instance of sessionService
func NewSessionService(sessionRepo domain.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

// StartSession implements SessionService
func (s *sessionService) StartSession(ctx context.Context, quizID string) (*dto.SessionResponse, error) {
	if quizID == "" {
		return nil, domain.NewInvalidInputError("quiz ID is required")
	}

	session := domain.NewSession(uuid.NewString(), quizID)
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to create session", err)
	}

	logger.Get().Info("Session started",
		zap.String("sessionID", session.ID),
		zap.String("quizID", quizID))
	return toSessionResponse(session), nil
}

// GetSession implements SessionService
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return toSessionResponse(session), nil
}

// UpdateFunnel implements SessionService
func (s *sessionService) UpdateFunnel(ctx context.Context, sessionID string, req *dto.UpdateFunnelRequest) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	patch := domain.FunnelMetadata(req.Metadata)
	if req.Screen != "" {
		screen := domain.FunnelScreen(req.Screen)
		if !domain.ValidFunnelScreen(screen) {
			return nil, domain.NewInvalidInputError("unknown funnel screen: " + req.Screen)
		}
		if patch == nil {
			patch = domain.FunnelMetadata{}
		}
		patch[domain.MetadataKeyCurrentScreen] = req.Screen
	}

	merged := domain.MergeFunnelMetadata(session.Metadata, patch)
	if err := s.sessionRepo.UpdateFunnelMetadata(ctx, sessionID, merged); err != nil {
		return nil, err
	}
	session.Metadata = merged

	// Reaching the final screen completes the session.
	if req.Screen == string(domain.ScreenComplete) && session.CompletedAt == nil {
		now := time.Now()
		if err := s.sessionRepo.CompleteSession(ctx, sessionID, now); err != nil {
			return nil, err
		}
		session.CompletedAt = &now
	}

	return toSessionResponse(session), nil
}

func toSessionResponse(session *domain.Session) *dto.SessionResponse {
	currentScreen := ""
	if v, ok := session.Metadata[domain.MetadataKeyCurrentScreen].(string); ok {
		currentScreen = v
	}
	return &dto.SessionResponse{
		ID:            session.ID,
		QuizID:        session.QuizID,
		CurrentScreen: currentScreen,
		Metadata:      session.Metadata,
		StartedAt:     session.StartedAt,
		CompletedAt:   session.CompletedAt,
	}
}
