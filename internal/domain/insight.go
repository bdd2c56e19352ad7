package domain

import "strings"

// maxInsightSelections caps how many selected option texts are joined into
// one insight card.
const maxInsightSelections = 2

// InsightAnchor configures one anchor question whose answer is surfaced
// verbatim as an insight card. Anchors are fixed per deployment, not
// per-quiz.
type InsightAnchor struct {
	Key      string
	Label    string
	Icon     string
	Fallback string
}

// AnchorAnswer is a resolved answer text for an anchor question key.
type AnchorAnswer struct {
	QuestionKey string
	AnswerText  string
}

// InsightCard is one display-ready insight.
type InsightCard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Text  string `json:"text"`
}

// JoinOptionTexts joins up to maxInsightSelections option texts with a comma.
// Empty texts are skipped.
func JoinOptionTexts(texts []string) string {
	kept := make([]string, 0, maxInsightSelections)
	for _, t := range texts {
		if t == "" {
			continue
		}
		kept = append(kept, t)
		if len(kept) == maxInsightSelections {
			break
		}
	}
	return strings.Join(kept, ", ")
}

// BuildInsightCards produces one card per configured anchor, in configuration
// order. Any anchor without a resolvable answer text degrades to its fallback
// text. Never errors; missing data is expected here.
func BuildInsightCards(anchors []InsightAnchor, answers []AnchorAnswer) []InsightCard {
	byKey := make(map[string]string, len(answers))
	for _, a := range answers {
		if a.AnswerText != "" {
			byKey[a.QuestionKey] = a.AnswerText
		}
	}

	cards := make([]InsightCard, 0, len(anchors))
	for _, anchor := range anchors {
		text := byKey[anchor.Key]
		if text == "" {
			text = anchor.Fallback
		}
		cards = append(cards, InsightCard{
			Key:   anchor.Key,
			Label: anchor.Label,
			Icon:  anchor.Icon,
			Text:  text,
		})
	}
	return cards
}
