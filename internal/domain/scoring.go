package domain

import (
	"math"
	"sort"
)

const (
	// MaxPointsPerOption is the assumed maximum score a single option can
	// carry. The normalized score divides by weight*MaxPointsPerOption per
	// question rather than by the actual option data.
	MaxPointsPerOption = 3

	// ResultVersion tags the calculation audit blob.
	ResultVersion = "v1"
)

// AnswerScore sums the score values of the selected options. Unknown option
// IDs score 0; there is no error path.
func AnswerScore(selectedOptionIDs []string, options []Option) int {
	scores := make(map[string]int, len(options))
	for _, opt := range options {
		scores[opt.ID] = opt.Score
	}
	total := 0
	for _, id := range selectedOptionIDs {
		total += scores[id]
	}
	return total
}

// ScoreSummary holds the aggregate numbers for one session's answers.
type ScoreSummary struct {
	RawScore             int
	WeightedScore        float64
	AnsweredCount        int
	ScoringQuestionCount int
	TotalWeight          float64
	MaxPossibleScore     float64
	NormalizedScore      int
}

// Aggregate computes the weighted score summary for a session. Only answers
// to scoring-type questions contribute; anchor and info answers are skipped.
func Aggregate(questions []Question, answers []Answer) ScoreSummary {
	weights := make(map[string]float64)
	var summary ScoreSummary
	for _, q := range questions {
		if !q.Type.IsScoring() {
			continue
		}
		weights[q.ID] = q.Weight
		summary.ScoringQuestionCount++
		summary.TotalWeight += q.Weight
		summary.MaxPossibleScore += q.Weight * MaxPointsPerOption
	}

	for _, a := range answers {
		weight, ok := weights[a.QuestionID]
		if !ok {
			continue
		}
		summary.RawScore += a.AnswerScore
		summary.WeightedScore += float64(a.AnswerScore) * weight
		summary.AnsweredCount++
	}

	if summary.MaxPossibleScore > 0 {
		summary.NormalizedScore = int(math.Round(summary.WeightedScore / summary.MaxPossibleScore * 100))
	}
	return summary
}

// MatchSegment finds the segment whose inclusive [MinScore, MaxScore] range
// contains the weighted score. When the score falls outside every range, the
// nearest boundary segment is chosen: below the lowest minimum picks the
// lowest segment, otherwise the highest. Returns false only when no segments
// are configured.
func MatchSegment(segments []Segment, weightedScore float64) (Segment, bool) {
	if len(segments) == 0 {
		return Segment{}, false
	}
	for _, s := range segments {
		if weightedScore >= s.MinScore && weightedScore <= s.MaxScore {
			return s, true
		}
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinScore < sorted[j].MinScore
	})
	if weightedScore < sorted[0].MinScore {
		return sorted[0], true
	}
	return sorted[len(sorted)-1], true
}

// PickOffer resolves the recommended offer for a segment. A segment without a
// mapped offer falls back to the offer under the lowest-sorted key, so the
// fallback stays deterministic across runs. Returns false when the mapping is
// empty.
func PickOffer(offers map[string]Offer, segmentID string) (Offer, bool) {
	if len(offers) == 0 {
		return Offer{}, false
	}
	if offer, ok := offers[segmentID]; ok {
		return offer, true
	}
	keys := make([]string, 0, len(offers))
	for k := range offers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return offers[keys[0]], true
}
