package quiz

import "testing"

func TestScoreCorrectInstant(t *testing.T) {
	got := Score(true, 0, 0, 3)
	want := Outcome{Correct: true, Points: 150, Streak: 1, Lives: 3}
	if got != want {
		t.Errorf("Score(true, 0, 0, 3) = %+v, want %+v", got, want)
	}
}

func TestScoreCorrectAtDeadline(t *testing.T) {
	got := Score(true, RoundTimeMillis, 0, 3)
	if got.Points != 100 {
		t.Errorf("points at deadline = %d, want 100", got.Points)
	}
}

func TestScoreStreakBonusCapped(t *testing.T) {
	// Half the window leaves a 25 point time bonus; a streak of 5 is capped
	// at 3 steps of 10.
	got := Score(true, 6000, 5, 2)
	want := Outcome{Correct: true, Points: 155, Streak: 6, Lives: 2}
	if got != want {
		t.Errorf("Score(true, 6000, 5, 2) = %+v, want %+v", got, want)
	}
}

func TestScoreRoundsOnce(t *testing.T) {
	// 100 + 50*(1 - 3000/12000) + 10 = 147.5, rounded to 148.
	got := Score(true, 3000, 1, 3)
	if got.Points != 148 {
		t.Errorf("points = %d, want 148", got.Points)
	}
}

func TestScoreClampsNegativeElapsed(t *testing.T) {
	got := Score(true, -500, 0, 3)
	if got.Points != 150 {
		t.Errorf("points with negative elapsed = %d, want 150", got.Points)
	}
}

func TestScoreNoBonusPastDeadline(t *testing.T) {
	got := Score(true, RoundTimeMillis*2, 0, 3)
	if got.Points != 100 {
		t.Errorf("points past deadline = %d, want 100", got.Points)
	}
}

func TestScoreIncorrect(t *testing.T) {
	got := Score(false, 2000, 4, 3)
	want := Outcome{Correct: false, Points: 0, Streak: 0, Lives: 2}
	if got != want {
		t.Errorf("Score(false, 2000, 4, 3) = %+v, want %+v", got, want)
	}
}

func TestScoreLivesFloorZero(t *testing.T) {
	got := Score(false, 0, 0, 0)
	if got.Lives != 0 {
		t.Errorf("lives = %d, want 0", got.Lives)
	}
}
