package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	// MinTargetScore is the floor for the projected score.
	MinTargetScore = 10

	// ProgramDurationDays is the fixed program length used for the target date.
	ProgramDurationDays = 90

	// displayScale rescales a 0-100 score onto the 0-50 gauge the result
	// screens render.
	displayScale = 50.0
)

// reductionFactors maps a daily time commitment (minutes) to the expected
// score reduction after the program duration.
var reductionFactors = map[int]float64{
	5:  0.25,
	10: 0.40,
	15: 0.55,
	20: 0.70,
}

// TimeCommitments returns the allowed daily time commitments in minutes,
// ascending.
func TimeCommitments() []int {
	return []int{5, 10, 15, 20}
}

// Projection is the projected outcome for a chosen time commitment.
type Projection struct {
	TargetScore         int
	DisplayCurrentScore int
	DisplayTargetScore  int
	ReductionPercent    int
	TargetDate          time.Time
}

// CalculateProjection computes the target score after the program duration
// for the given current normalized score and daily time commitment. The
// target is floored at MinTargetScore. The reduction percent is clamped to 0
// when the current score is 0 instead of dividing by zero.
func CalculateProjection(currentScore int, timeCommitmentMinutes int, now time.Time) (Projection, error) {
	factor, ok := reductionFactors[timeCommitmentMinutes]
	if !ok {
		return Projection{}, NewInvalidInputError(
			fmt.Sprintf("time commitment must be one of %v minutes, got %d", TimeCommitments(), timeCommitmentMinutes))
	}

	target := int(math.Round(float64(currentScore) * (1 - factor)))
	if target < MinTargetScore {
		target = MinTargetScore
	}

	reductionPercent := 0
	if currentScore > 0 {
		reductionPercent = int(math.Round(float64(currentScore-target) / float64(currentScore) * 100))
	}

	return Projection{
		TargetScore:         target,
		DisplayCurrentScore: displayScore(currentScore),
		DisplayTargetScore:  displayScore(target),
		ReductionPercent:    reductionPercent,
		TargetDate:          now.AddDate(0, 0, ProgramDurationDays),
	}, nil
}

func displayScore(score int) int {
	return int(math.Round(float64(score) / 100 * displayScale))
}
