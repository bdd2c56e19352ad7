package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerScore(t *testing.T) {
	options := []Option{
		{ID: "opt1", Score: 1},
		{ID: "opt2", Score: 2},
		{ID: "opt3", Score: 3},
	}

	t.Run("sums selected option scores", func(t *testing.T) {
		assert.Equal(t, 5, AnswerScore([]string{"opt2", "opt3"}, options))
	})

	t.Run("unknown option ids score zero", func(t *testing.T) {
		assert.Equal(t, 0, AnswerScore([]string{"missing1", "missing2"}, options))
	})

	t.Run("mix of known and unknown", func(t *testing.T) {
		assert.Equal(t, 3, AnswerScore([]string{"opt3", "missing"}, options))
	})

	t.Run("no selection scores zero", func(t *testing.T) {
		assert.Equal(t, 0, AnswerScore(nil, options))
	})
}

func scoringQuestion(id string, weight float64) Question {
	return Question{ID: id, Type: QuestionTypeSingleChoice, Weight: weight}
}

func TestAggregate(t *testing.T) {
	t.Run("two questions weight one", func(t *testing.T) {
		questions := []Question{
			scoringQuestion("q1", 1.0),
			scoringQuestion("q2", 1.0),
		}
		answers := []Answer{
			{QuestionID: "q1", AnswerScore: 2},
			{QuestionID: "q2", AnswerScore: 2},
		}

		summary := Aggregate(questions, answers)
		assert.Equal(t, 4, summary.RawScore)
		assert.Equal(t, 4.0, summary.WeightedScore)
		assert.Equal(t, 2, summary.AnsweredCount)
		assert.Equal(t, 2, summary.ScoringQuestionCount)
		assert.Equal(t, 6.0, summary.MaxPossibleScore)
		assert.Equal(t, 67, summary.NormalizedScore) // round(4/6*100)
	})

	t.Run("uneven weights", func(t *testing.T) {
		questions := []Question{
			scoringQuestion("q1", 2.0),
			scoringQuestion("q2", 0.5),
		}
		answers := []Answer{
			{QuestionID: "q1", AnswerScore: 3},
			{QuestionID: "q2", AnswerScore: 3},
		}

		summary := Aggregate(questions, answers)
		assert.Equal(t, 7.5, summary.WeightedScore)
		assert.Equal(t, 6, summary.RawScore)
	})

	t.Run("non scoring questions excluded", func(t *testing.T) {
		questions := []Question{
			scoringQuestion("q1", 1.0),
			{ID: "q2", Type: QuestionTypeAnchor, Weight: 1.0},
			{ID: "q3", Type: QuestionTypeInfo, Weight: 1.0},
		}
		answers := []Answer{
			{QuestionID: "q1", AnswerScore: 2},
			{QuestionID: "q2", AnswerScore: 2},
		}

		summary := Aggregate(questions, answers)
		assert.Equal(t, 2, summary.RawScore)
		assert.Equal(t, 1, summary.AnsweredCount)
		assert.Equal(t, 1, summary.ScoringQuestionCount)
		assert.Equal(t, 3.0, summary.MaxPossibleScore)
	})

	t.Run("empty inputs yield zero summary", func(t *testing.T) {
		summary := Aggregate(nil, nil)
		assert.Equal(t, 0, summary.RawScore)
		assert.Equal(t, 0.0, summary.WeightedScore)
		assert.Equal(t, 0, summary.NormalizedScore) // no division by zero
	})

	t.Run("twenty questions full score", func(t *testing.T) {
		var questions []Question
		var answers []Answer
		for i := 0; i < 20; i++ {
			id := string(rune('a' + i))
			questions = append(questions, scoringQuestion(id, 1.0))
			answers = append(answers, Answer{QuestionID: id, AnswerScore: 3})
		}

		summary := Aggregate(questions, answers)
		assert.Equal(t, 60.0, summary.WeightedScore)
		assert.Equal(t, 100, summary.NormalizedScore)
	})
}

func TestMatchSegment(t *testing.T) {
	segments := []Segment{
		{ID: "low", MinScore: 0, MaxScore: 20},
		{ID: "medium", MinScore: 21, MaxScore: 40},
		{ID: "high", MinScore: 41, MaxScore: 60},
	}

	t.Run("score inside a range", func(t *testing.T) {
		seg, ok := MatchSegment(segments, 4)
		assert.True(t, ok)
		assert.Equal(t, "low", seg.ID)
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		seg, ok := MatchSegment(segments, 60)
		assert.True(t, ok)
		assert.Equal(t, "high", seg.ID)

		seg, ok = MatchSegment(segments, 21)
		assert.True(t, ok)
		assert.Equal(t, "medium", seg.ID)
	})

	t.Run("below lowest minimum picks lowest", func(t *testing.T) {
		seg, ok := MatchSegment(segments, -5)
		assert.True(t, ok)
		assert.Equal(t, "low", seg.ID)
	})

	t.Run("above highest maximum picks highest", func(t *testing.T) {
		seg, ok := MatchSegment(segments, 999)
		assert.True(t, ok)
		assert.Equal(t, "high", seg.ID)
	})

	t.Run("gap between ranges picks highest", func(t *testing.T) {
		gapped := []Segment{
			{ID: "low", MinScore: 0, MaxScore: 10},
			{ID: "high", MinScore: 50, MaxScore: 60},
		}
		seg, ok := MatchSegment(gapped, 30)
		assert.True(t, ok)
		assert.Equal(t, "high", seg.ID)
	})

	t.Run("no segments configured", func(t *testing.T) {
		_, ok := MatchSegment(nil, 10)
		assert.False(t, ok)
	})
}

func TestPickOffer(t *testing.T) {
	offers := map[string]Offer{
		"low":    {ID: "offer-basic", Name: "Basic"},
		"high":   {ID: "offer-premium", Name: "Premium"},
		"medium": {ID: "offer-standard", Name: "Standard"},
	}

	t.Run("mapped segment", func(t *testing.T) {
		offer, ok := PickOffer(offers, "medium")
		assert.True(t, ok)
		assert.Equal(t, "offer-standard", offer.ID)
	})

	t.Run("unmapped segment falls back to lowest sorted key", func(t *testing.T) {
		offer, ok := PickOffer(offers, "unknown")
		assert.True(t, ok)
		assert.Equal(t, "offer-premium", offer.ID) // "high" sorts first
	})

	t.Run("empty mapping", func(t *testing.T) {
		_, ok := PickOffer(nil, "low")
		assert.False(t, ok)
	})
}
