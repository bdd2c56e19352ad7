package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/repository/models"
	"quiz-funnel/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAnswerRepository implements domain.AnswerRepository using sqlx.
type sqlxAnswerRepository struct {
	db *sqlx.DB
}

// NewSQLXAnswerRepository creates a new instance of sqlxAnswerRepository.
func NewSQLXAnswerRepository(db *sqlx.DB) domain.AnswerRepository {
	return &sqlxAnswerRepository{db: db}
}

func toDomainAnswer(m *models.Answer) *domain.Answer {
	if m == nil {
		return nil
	}
	selected := []string{}
	if m.SelectedOptions != nil {
		selected = m.SelectedOptions
	}
	return &domain.Answer{
		ID:                m.ID,
		SessionID:         m.SessionID,
		QuestionID:        m.QuestionID,
		SelectedOptionIDs: selected,
		FreeText:          m.FreeText.String,
		AnswerScore:       m.AnswerScore,
		TimeSpentMS:       m.TimeSpentMS,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromDomainAnswer(a *domain.Answer) (*models.Answer, error) {
	if a == nil {
		return nil, fmt.Errorf("cannot convert nil answer")
	}
	var selected models.StringSlice
	if a.SelectedOptionIDs != nil {
		selected = a.SelectedOptionIDs
	} else {
		selected = models.StringSlice{}
	}
	return &models.Answer{
		ID:              a.ID,
		SessionID:       a.SessionID,
		QuestionID:      a.QuestionID,
		SelectedOptions: selected,
		FreeText:        util.StringToNullString(a.FreeText),
		AnswerScore:     a.AnswerScore,
		TimeSpentMS:     a.TimeSpentMS,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}, nil
}

// UpsertAnswer inserts or replaces the answer for (session, question) via
// MERGE, so re-answering never duplicates the row.
func (r *sqlxAnswerRepository) UpsertAnswer(ctx context.Context, answer *domain.Answer) error {
	m, err := fromDomainAnswer(answer)
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

	selectedVal, err := m.SelectedOptions.Value()
	if err != nil {
		return fmt.Errorf("failed to serialize selected options: %w", err)
	}

	query := `MERGE INTO answers a
	USING (SELECT :1 session_id, :2 question_id FROM dual) src
	ON (a.session_id = src.session_id AND a.question_id = src.question_id)
	WHEN MATCHED THEN UPDATE SET
		a.selected_options = :3,
		a.free_text = :4,
		a.answer_score = :5,
		a.time_spent_ms = :6,
		a.updated_at = :7
	WHEN NOT MATCHED THEN INSERT (
		id, session_id, question_id, selected_options, free_text,
		answer_score, time_spent_ms, created_at, updated_at
	) VALUES (
		:8, :9, :10, :11, :12, :13, :14, :15, :16
	)`

	executor := GetExecutor(ctx, r.db)
	_, err = executor.ExecContext(ctx, query,
		m.SessionID, m.QuestionID,
		selectedVal, m.FreeText, m.AnswerScore, m.TimeSpentMS, m.UpdatedAt,
		m.ID, m.SessionID, m.QuestionID, selectedVal, m.FreeText,
		m.AnswerScore, m.TimeSpentMS, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", err)
	}

	answer.ID = m.ID
	answer.CreatedAt = m.CreatedAt
	answer.UpdatedAt = m.UpdatedAt
	return nil
}

const selectAnswerColumns = `
	id "id",
	session_id "session_id",
	question_id "question_id",
	selected_options "selected_options",
	free_text "free_text",
	answer_score "answer_score",
	time_spent_ms "time_spent_ms",
	created_at "created_at",
	updated_at "updated_at"`

// GetAnswersBySessionID returns all answers recorded for a session.
func (r *sqlxAnswerRepository) GetAnswersBySessionID(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	var rows []models.Answer
	query := `SELECT ` + selectAnswerColumns + `
	FROM answers
	WHERE session_id = :1`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get answers for session %s: %w", sessionID, err)
	}

	answers := make([]domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, *toDomainAnswer(&rows[i]))
	}
	return answers, nil
}

// GetAnswersForQuestions returns the session's answers to the given questions.
func (r *sqlxAnswerRepository) GetAnswersForQuestions(ctx context.Context, sessionID string, questionIDs []string) ([]domain.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(questionIDs))
	args := make([]interface{}, 0, len(questionIDs)+1)
	args = append(args, sessionID)
	for i, id := range questionIDs {
		placeholders[i] = fmt.Sprintf(":%d", i+2)
		args = append(args, id)
	}

	var rows []models.Answer
	query := `SELECT ` + selectAnswerColumns + `
	FROM answers
	WHERE session_id = :1
	AND question_id IN (` + strings.Join(placeholders, ", ") + `)`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get answers for questions: %w", err)
	}

	answers := make([]domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, *toDomainAnswer(&rows[i]))
	}
	return answers, nil
}
