package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// JSONMap stores a map[string]interface{} as a JSON object in a CLOB column.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("JSONMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// Session row in quiz_sessions.
type Session struct {
	ID          string       `db:"id"`
	QuizID      string       `db:"quiz_id"`
	Metadata    JSONMap      `db:"metadata"`
	StartedAt   time.Time    `db:"started_at"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// Question row in questions.
type Question struct {
	ID        string    `db:"id"`
	QuizID    string    `db:"quiz_id"`
	QKey      string    `db:"q_key"`
	QType     string    `db:"q_type"`
	QText     string    `db:"q_text"`
	Weight    float64   `db:"weight"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Option row in options.
type Option struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	OText      string `db:"o_text"`
	Score      int    `db:"score"`
	Position   int    `db:"position"`
}

// Answer row in answers. UNIQUE(session_id, question_id).
type Answer struct {
	ID              string         `db:"id"`
	SessionID       string         `db:"session_id"`
	QuestionID      string         `db:"question_id"`
	SelectedOptions StringSlice    `db:"selected_options"`
	FreeText        sql.NullString `db:"free_text"`
	AnswerScore     int            `db:"answer_score"`
	TimeSpentMS     int            `db:"time_spent_ms"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Result row in results. UNIQUE(session_id).
type Result struct {
	ID                 string         `db:"id"`
	SessionID          string         `db:"session_id"`
	QuizID             string         `db:"quiz_id"`
	RawScore           int            `db:"raw_score"`
	WeightedScore      float64        `db:"weighted_score"`
	NormalizedScore    int            `db:"normalized_score"`
	SegmentID          sql.NullString `db:"segment_id"`
	SegmentLabel       sql.NullString `db:"segment_label"`
	SegmentDescription sql.NullString `db:"segment_description"`
	OfferID            sql.NullString `db:"offer_id"`
	OfferName          sql.NullString `db:"offer_name"`
	Detail             string         `db:"detail"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// PriceRow row in pricing_tiers. UNIQUE(offer_id, tier).
type PriceRow struct {
	ID              string `db:"id"`
	OfferID         string `db:"offer_id"`
	Tier            string `db:"tier"`
	AmountCents     int64  `db:"amount_cents"`
	Currency        string `db:"currency"`
	BillingInterval string `db:"billing_interval"`
}

// Subscription row in subscriptions.
type Subscription struct {
	ID          string    `db:"id"`
	SessionID   string    `db:"session_id"`
	OfferID     string    `db:"offer_id"`
	Tier        string    `db:"tier"`
	AmountCents int64     `db:"amount_cents"`
	Currency    string    `db:"currency"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}
