package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/repository/models"
	"quiz-funnel/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainResult(m *models.Result) (*domain.Result, error) {
	if m == nil {
		return nil, nil
	}
	var detail domain.ResultDetail
	if m.Detail != "" {
		if err := json.Unmarshal([]byte(m.Detail), &detail); err != nil {
			return nil, fmt.Errorf("failed to parse result detail: %w", err)
		}
	}
	return &domain.Result{
		ID:                 m.ID,
		SessionID:          m.SessionID,
		QuizID:             m.QuizID,
		RawScore:           m.RawScore,
		WeightedScore:      m.WeightedScore,
		NormalizedScore:    m.NormalizedScore,
		SegmentID:          m.SegmentID.String,
		SegmentLabel:       m.SegmentLabel.String,
		SegmentDescription: m.SegmentDescription.String,
		OfferID:            m.OfferID.String,
		OfferName:          m.OfferName.String,
		Detail:             detail,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

func fromDomainResult(r *domain.Result) (*models.Result, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot convert nil result")
	}
	detailJSON, err := json.Marshal(r.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize result detail: %w", err)
	}
	return &models.Result{
		ID:                 r.ID,
		SessionID:          r.SessionID,
		QuizID:             r.QuizID,
		RawScore:           r.RawScore,
		WeightedScore:      r.WeightedScore,
		NormalizedScore:    r.NormalizedScore,
		SegmentID:          util.StringToNullString(r.SegmentID),
		SegmentLabel:       util.StringToNullString(r.SegmentLabel),
		SegmentDescription: util.StringToNullString(r.SegmentDescription),
		OfferID:            util.StringToNullString(r.OfferID),
		OfferName:          util.StringToNullString(r.OfferName),
		Detail:             string(detailJSON),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

// UpsertResult inserts or replaces the single result row for a session via
// MERGE keyed on session_id, so recomputation stays idempotent.
func (r *sqlxResultRepository) UpsertResult(ctx context.Context, result *domain.Result) error {
	m, err := fromDomainResult(result)
	if err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `MERGE INTO results r
	USING (SELECT :1 session_id FROM dual) src
	ON (r.session_id = src.session_id)
	WHEN MATCHED THEN UPDATE SET
		r.raw_score = :2,
		r.weighted_score = :3,
		r.normalized_score = :4,
		r.segment_id = :5,
		r.segment_label = :6,
		r.segment_description = :7,
		r.offer_id = :8,
		r.offer_name = :9,
		r.detail = :10,
		r.updated_at = :11
	WHEN NOT MATCHED THEN INSERT (
		id, session_id, quiz_id, raw_score, weighted_score, normalized_score,
		segment_id, segment_label, segment_description, offer_id, offer_name,
		detail, created_at, updated_at
	) VALUES (
		:12, :13, :14, :15, :16, :17, :18, :19, :20, :21, :22, :23, :24, :25
	)`

	executor := GetExecutor(ctx, r.db)
	_, err = executor.ExecContext(ctx, query,
		m.SessionID,
		m.RawScore, m.WeightedScore, m.NormalizedScore,
		m.SegmentID, m.SegmentLabel, m.SegmentDescription,
		m.OfferID, m.OfferName, m.Detail, m.UpdatedAt,
		m.ID, m.SessionID, m.QuizID, m.RawScore, m.WeightedScore, m.NormalizedScore,
		m.SegmentID, m.SegmentLabel, m.SegmentDescription, m.OfferID, m.OfferName,
		m.Detail, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert result: %w", err)
	}

	result.ID = m.ID
	result.CreatedAt = m.CreatedAt
	result.UpdatedAt = m.UpdatedAt
	return nil
}

// GetResultBySessionID retrieves a session's result, nil when absent.
func (r *sqlxResultRepository) GetResultBySessionID(ctx context.Context, sessionID string) (*domain.Result, error) {
	var m models.Result
	query := `SELECT
		id "id",
		session_id "session_id",
		quiz_id "quiz_id",
		raw_score "raw_score",
		weighted_score "weighted_score",
		normalized_score "normalized_score",
		segment_id "segment_id",
		segment_label "segment_label",
		segment_description "segment_description",
		offer_id "offer_id",
		offer_name "offer_name",
		detail "detail",
		created_at "created_at",
		updated_at "updated_at"
	FROM results
	WHERE session_id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result for session %s: %w", sessionID, err)
	}
	return toDomainResult(&m)
}
