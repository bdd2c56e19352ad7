package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAnchors = []InsightAnchor{
	{Key: "main_trigger", Label: "Main trigger", Icon: "bolt", Fallback: "Daily pressure"},
	{Key: "body_signal", Label: "Body signal", Icon: "heart", Fallback: "Tension"},
	{Key: "coping_habit", Label: "Coping habit", Icon: "leaf", Fallback: "None yet"},
}

func TestBuildInsightCards(t *testing.T) {
	t.Run("answers fill cards in anchor order", func(t *testing.T) {
		answers := []AnchorAnswer{
			{QuestionKey: "coping_habit", AnswerText: "Evening walks"},
			{QuestionKey: "main_trigger", AnswerText: "Work deadlines"},
		}

		cards := BuildInsightCards(testAnchors, answers)
		assert.Len(t, cards, 3)
		assert.Equal(t, "main_trigger", cards[0].Key)
		assert.Equal(t, "Work deadlines", cards[0].Text)
		assert.Equal(t, "Tension", cards[1].Text) // fallback, no answer
		assert.Equal(t, "Evening walks", cards[2].Text)
	})

	t.Run("no answers degrades fully to fallbacks", func(t *testing.T) {
		cards := BuildInsightCards(testAnchors, nil)
		assert.Len(t, cards, 3)
		for i, card := range cards {
			assert.Equal(t, testAnchors[i].Fallback, card.Text)
			assert.Equal(t, testAnchors[i].Label, card.Label)
			assert.Equal(t, testAnchors[i].Icon, card.Icon)
		}
	})

	t.Run("empty answer text uses fallback", func(t *testing.T) {
		answers := []AnchorAnswer{{QuestionKey: "body_signal", AnswerText: ""}}
		cards := BuildInsightCards(testAnchors, answers)
		assert.Equal(t, "Tension", cards[1].Text)
	})

	t.Run("no anchors yields no cards", func(t *testing.T) {
		cards := BuildInsightCards(nil, []AnchorAnswer{{QuestionKey: "x", AnswerText: "y"}})
		assert.Empty(t, cards)
	})
}

func TestJoinOptionTexts(t *testing.T) {
	assert.Equal(t, "Sleep, Focus", JoinOptionTexts([]string{"Sleep", "Focus"}))
	assert.Equal(t, "Sleep, Focus", JoinOptionTexts([]string{"Sleep", "Focus", "Mood"}), "caps at two selections")
	assert.Equal(t, "Sleep", JoinOptionTexts([]string{"", "Sleep"}), "skips empty texts")
	assert.Equal(t, "", JoinOptionTexts(nil))
}
