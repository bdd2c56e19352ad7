package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/repository/models"
	"quiz-funnel/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:        m.ID,
		QuizID:    m.QuizID,
		Key:       m.QKey,
		Type:      domain.QuestionType(m.QType),
		Text:      m.QText,
		Weight:    m.Weight,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toDomainOption(m *models.Option) domain.Option {
	return domain.Option{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.OText,
		Score:      m.Score,
		Position:   m.Position,
	}
}

const selectQuestionColumns = `
	id "id",
	quiz_id "quiz_id",
	q_key "q_key",
	q_type "q_type",
	q_text "q_text",
	weight "weight",
	position "position",
	created_at "created_at",
	updated_at "updated_at"`

// GetQuestionsByQuizID returns a quiz's questions with options, ordered by
// position.
func (r *sqlxQuestionRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]domain.Question, error) {
	var rows []models.Question
	query := `SELECT ` + selectQuestionColumns + `
	FROM questions
	WHERE quiz_id = :1
	ORDER BY position ASC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, *toDomainQuestion(&rows[i]))
	}
	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestionByID retrieves one question with its options, nil when absent.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	query := `SELECT ` + selectQuestionColumns + `
	FROM questions
	WHERE id = :1`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &m, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}

	question := toDomainQuestion(&m)
	questions := []domain.Question{*question}
	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// GetQuestionsByKeys returns the questions matching the given stable keys.
func (r *sqlxQuestionRepository) GetQuestionsByKeys(ctx context.Context, quizID string, keys []string) ([]domain.Question, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]interface{}, 0, len(keys)+1)
	args = append(args, quizID)
	for i, key := range keys {
		placeholders[i] = fmt.Sprintf(":%d", i+2)
		args = append(args, key)
	}

	var rows []models.Question
	query := `SELECT ` + selectQuestionColumns + `
	FROM questions
	WHERE quiz_id = :1
	AND q_key IN (` + strings.Join(placeholders, ", ") + `)
	ORDER BY position ASC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by keys for quiz %s: %w", quizID, err)
	}

	questions := make([]domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, *toDomainQuestion(&rows[i]))
	}
	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// attachOptions loads the options for the given questions in one query.
func (r *sqlxQuestionRepository) attachOptions(ctx context.Context, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	placeholders := make([]string, len(questions))
	args := make([]interface{}, len(questions))
	index := make(map[string]int, len(questions))
	for i := range questions {
		placeholders[i] = fmt.Sprintf(":%d", i+1)
		args[i] = questions[i].ID
		index[questions[i].ID] = i
	}

	var rows []models.Option
	query := `SELECT
		id "id",
		question_id "question_id",
		o_text "o_text",
		score "score",
		position "position"
	FROM options
	WHERE question_id IN (` + strings.Join(placeholders, ", ") + `)
	ORDER BY position ASC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("failed to get options: %w", err)
	}

	for i := range rows {
		if qi, ok := index[rows[i].QuestionID]; ok {
			questions[qi].Options = append(questions[qi].Options, toDomainOption(&rows[i]))
		}
	}
	return nil
}

// SaveQuestion persists a new question.
func (r *sqlxQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	query := `INSERT INTO questions (
		id, quiz_id, q_key, q_type, q_text, weight, position, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		question.ID,
		question.QuizID,
		question.Key,
		string(question.Type),
		question.Text,
		question.Weight,
		question.Position,
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// SaveOption persists a new option.
func (r *sqlxQuestionRepository) SaveOption(ctx context.Context, option *domain.Option) error {
	if option == nil {
		return fmt.Errorf("cannot save nil option")
	}
	if option.ID == "" {
		option.ID = util.NewULID()
	}

	query := `INSERT INTO options (
		id, question_id, o_text, score, position
	) VALUES (
		:1, :2, :3, :4, :5
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		option.ID,
		option.QuestionID,
		option.Text,
		option.Score,
		option.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to save option: %w", err)
	}
	return nil
}
