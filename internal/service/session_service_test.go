package service

import (
	"context"
	"testing"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session with empty metadata", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		var created *domain.Session
		sessionRepo.On("CreateSession", ctx, mock.AnythingOfType("*domain.Session")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Session) }).
			Return(nil).Once()

		response, err := svc.StartSession(ctx, "stress-check")

		require.NoError(t, err)
		assert.NotEmpty(t, response.ID)
		assert.Equal(t, "stress-check", response.QuizID)
		assert.Empty(t, response.CurrentScreen)
		require.NotNil(t, created)
		assert.NotNil(t, created.Metadata)
		assert.Empty(t, created.Metadata)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("rejects empty quiz ID", func(t *testing.T) {
		svc := NewSessionService(new(MockSessionRepository))

		_, err := svc.StartSession(ctx, "")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})
}

func TestSessionService_GetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns session with current screen from metadata", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		sessionRepo.On("GetSessionByID", ctx, "sess-1").Return(&domain.Session{
			ID:     "sess-1",
			QuizID: "stress-check",
			Metadata: domain.FunnelMetadata{
				domain.MetadataKeyCurrentScreen: "C1",
			},
		}, nil).Once()

		response, err := svc.GetSession(ctx, "sess-1")

		require.NoError(t, err)
		assert.Equal(t, "C1", response.CurrentScreen)
	})

	t.Run("unknown session returns not found", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		sessionRepo.On("GetSessionByID", ctx, "missing").Return(nil, nil).Once()

		_, err := svc.GetSession(ctx, "missing")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
	})
}

func TestSessionService_UpdateFunnel(t *testing.T) {
	ctx := context.Background()

	t.Run("merges patch into existing metadata", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		sessionRepo.On("GetSessionByID", ctx, "sess-1").Return(&domain.Session{
			ID:     "sess-1",
			QuizID: "stress-check",
			Metadata: domain.FunnelMetadata{
				domain.MetadataKeyEmail: "a@example.com",
			},
		}, nil).Once()

		var stored domain.FunnelMetadata
		sessionRepo.On("UpdateFunnelMetadata", ctx, "sess-1", mock.AnythingOfType("domain.FunnelMetadata")).
			Run(func(args mock.Arguments) { stored = args.Get(2).(domain.FunnelMetadata) }).
			Return(nil).Once()

		response, err := svc.UpdateFunnel(ctx, "sess-1", &dto.UpdateFunnelRequest{
			Metadata: map[string]interface{}{domain.MetadataKeyFirstName: "Sam"},
			Screen:   "D",
		})

		require.NoError(t, err)
		assert.Equal(t, "D", response.CurrentScreen)
		// Earlier keys survive the patch.
		assert.Equal(t, "a@example.com", stored[domain.MetadataKeyEmail])
		assert.Equal(t, "Sam", stored[domain.MetadataKeyFirstName])
		assert.Equal(t, "D", stored[domain.MetadataKeyCurrentScreen])
		sessionRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown screen", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		sessionRepo.On("GetSessionByID", ctx, "sess-1").Return(&domain.Session{
			ID: "sess-1", QuizID: "stress-check", Metadata: domain.FunnelMetadata{},
		}, nil).Once()

		_, err := svc.UpdateFunnel(ctx, "sess-1", &dto.UpdateFunnelRequest{Screen: "Z"})

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
		sessionRepo.AssertNotCalled(t, "UpdateFunnelMetadata", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reaching the final screen completes the session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := NewSessionService(sessionRepo)

		sessionRepo.On("GetSessionByID", ctx, "sess-1").Return(&domain.Session{
			ID: "sess-1", QuizID: "stress-check", Metadata: domain.FunnelMetadata{},
		}, nil).Once()
		sessionRepo.On("UpdateFunnelMetadata", ctx, "sess-1", mock.Anything).Return(nil).Once()
		sessionRepo.On("CompleteSession", ctx, "sess-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

		response, err := svc.UpdateFunnel(ctx, "sess-1", &dto.UpdateFunnelRequest{Screen: "complete"})

		require.NoError(t, err)
		assert.NotNil(t, response.CompletedAt)
		sessionRepo.AssertExpectations(t)
	})
}
