package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/repository/models"
	"quiz-funnel/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSessionRepository implements domain.SessionRepository using sqlx.
type sqlxSessionRepository struct {
	db *sqlx.DB
}

// NewSQLXSessionRepository creates a new instance of sqlxSessionRepository.
func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func toDomainSession(m *models.Session) *domain.Session {
	if m == nil {
		return nil
	}
	metadata := domain.FunnelMetadata{}
	if m.Metadata != nil {
		metadata = domain.FunnelMetadata(m.Metadata)
	}
	return &domain.Session{
		ID:          m.ID,
		QuizID:      m.QuizID,
		Metadata:    metadata,
		StartedAt:   m.StartedAt,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CreateSession inserts a new session row with its metadata blob.
func (r *sqlxSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		return fmt.Errorf("cannot create session with empty ID")
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.StartedAt.IsZero() {
		session.StartedAt = now
	}

	metadataVal, err := models.JSONMap(session.Metadata).Value()
	if err != nil {
		return fmt.Errorf("failed to serialize session metadata: %w", err)
	}

	query := `INSERT INTO quiz_sessions (
		id, quiz_id, metadata, started_at, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	executor := GetExecutor(ctx, r.db)
	_, err = executor.ExecContext(ctx, query,
		session.ID,
		session.QuizID,
		metadataVal,
		session.StartedAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByID retrieves a session, nil when absent.
func (r *sqlxSessionRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	var m models.Session
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		metadata "metadata",
		started_at "started_at",
		completed_at "completed_at",
		created_at "created_at",
		updated_at "updated_at"
	FROM quiz_sessions
	WHERE id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by ID %s: %w", id, err)
	}
	return toDomainSession(&m), nil
}

// UpdateFunnelMetadata replaces the stored metadata blob. Callers merge
// first; this write is last-write-wins at the storage layer.
func (r *sqlxSessionRepository) UpdateFunnelMetadata(ctx context.Context, id string, metadata domain.FunnelMetadata) error {
	metadataVal, err := models.JSONMap(metadata).Value()
	if err != nil {
		return fmt.Errorf("failed to serialize session metadata: %w", err)
	}

	query := `UPDATE quiz_sessions SET
		metadata = :1,
		updated_at = :2
	WHERE id = :3`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, metadataVal, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update funnel metadata: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewSessionNotFoundError(id)
	}
	return nil
}

// CompleteSession stamps the completion time.
func (r *sqlxSessionRepository) CompleteSession(ctx context.Context, id string, completedAt time.Time) error {
	query := `UPDATE quiz_sessions SET
		completed_at = :1,
		updated_at = :2
	WHERE id = :3`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, completedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewSessionNotFoundError(id)
	}
	return nil
}
