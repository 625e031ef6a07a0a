// quiz/scoring.go
package quiz

import (
	"math"
	"time"
)

// RoundTimeMillis is the fixed per-round answer window.
const RoundTimeMillis = 12000

// RoundTime is RoundTimeMillis as a duration, for timer scheduling.
const RoundTime = RoundTimeMillis * time.Millisecond

const (
	basePoints      = 100
	maxTimeBonus    = 50
	streakBonusStep = 10
	maxStreakSteps  = 3
)

// Outcome is the result of scoring a single answer: the points it earned
// and the player's streak and lives after it is applied.
type Outcome struct {
	Correct bool
	Points  int
	Streak  int
	Lives   int
}

// Score maps one answer to its point, streak and life deltas. elapsedMillis
// is clamped to >= 0; streak and lives are the player's values before this
// answer. A wrong or timed-out answer earns nothing, resets the streak and
// costs a life (floor 0). A correct answer earns 100 base points, a time
// bonus decaying linearly from 50 at t=0 to 0 at the round limit, and 10
// points per consecutive correct answer up to three; the sum is rounded once
// at the end.
func Score(correct bool, elapsedMillis int64, streak, lives int) Outcome {
	if !correct {
		lives--
		if lives < 0 {
			lives = 0
		}
		return Outcome{Correct: false, Points: 0, Streak: 0, Lives: lives}
	}

	if elapsedMillis < 0 {
		elapsedMillis = 0
	}
	timeBonus := math.Max(0, maxTimeBonus*(1-float64(elapsedMillis)/RoundTimeMillis))
	streakBonus := float64(min(maxStreakSteps, streak) * streakBonusStep)
	points := int(math.Round(basePoints + timeBonus + streakBonus))

	return Outcome{Correct: true, Points: points, Streak: streak + 1, Lives: lives}
}
