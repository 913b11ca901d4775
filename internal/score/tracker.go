// Package score turns placement verdicts into points, streaks and an
// Elo-style rating.
package score

import (
	"math"

	"github.com/f3rmion/orbital/internal/orbital"
)

const (
	// StartRating is the rating of a new player.
	StartRating = 1200.0
	// MinRating is the floor the rating never drops below.
	MinRating = 100.0
	// K is the Elo update factor.
	K = 24.0

	pointsCorrect   = 10
	streakBonus     = 2
	streakBonusCap  = 10
	pointsMistake   = 5
	pointsHint      = 3
	streakAchieveAt = 25
)

// Difficulty returns the Elo difficulty of building the atom with atomic number z.
func Difficulty(z int) float64 {
	return 800 + 25*float64(z)
}

// Expected returns the Elo win expectation of rating against difficulty.
func Expected(rating, difficulty float64) float64 {
	return 1 / (1 + math.Pow(10, (difficulty-rating)/400))
}

// Delta is the change one event made to the tracker.
type Delta struct {
	Points int     `json:"points"`
	Rating float64 `json:"rating"`
	Streak int     `json:"streak"`
}

// Tracker accumulates score for a player. The zero value is not usable;
// call New.
type Tracker struct {
	Points     int     `json:"points"`
	Streak     int     `json:"streak"`
	BestStreak int     `json:"best_streak"`
	Rating     float64 `json:"rating"`
	Correct    int     `json:"correct"`
	Mistakes   int     `json:"mistakes"`
	Hund       int     `json:"hund"`
	Hints      int     `json:"hints"`
}

// New returns a tracker starting at rating.
func New(rating float64) *Tracker {
	if rating < MinRating {
		rating = StartRating
	}
	return &Tracker{Rating: rating}
}

// Record scores one validator verdict for a placement on atom z. Sandbox
// placements are never scored.
func (t *Tracker) Record(v orbital.Verdict, mode orbital.Mode, z int) Delta {
	if mode == orbital.Sandbox {
		return Delta{Streak: t.Streak}
	}

	if v.Clean() {
		bonus := t.Streak
		if bonus > streakBonusCap {
			bonus = streakBonusCap
		}
		pts := pointsCorrect + streakBonus*bonus
		t.Points += pts
		t.Streak++
		if t.Streak > t.BestStreak {
			t.BestStreak = t.Streak
		}
		t.Correct++
		return Delta{Points: pts, Rating: t.rate(1, z), Streak: t.Streak}
	}

	if v.Violation != nil && v.Violation.Kind == orbital.Hund {
		t.Hund++
	}
	t.Mistakes++
	t.Streak = 0
	return Delta{Points: t.deduct(pointsMistake), Rating: t.rate(0, z)}
}

// RecordHint charges for a revealed hint in campaign mode.
func (t *Tracker) RecordHint(mode orbital.Mode) Delta {
	if mode == orbital.Sandbox {
		return Delta{Streak: t.Streak}
	}
	t.Hints++
	t.Streak = 0
	return Delta{Points: t.deduct(pointsHint)}
}

// StreakMilestone reports whether the best streak earned the streak achievement.
func (t *Tracker) StreakMilestone() bool {
	return t.BestStreak >= streakAchieveAt
}

// Stars grades a finished atom: 3 with no mistakes or hints, 2 with at
// most two, otherwise 1.
func (t *Tracker) Stars() int {
	slips := t.Mistakes + t.Hints
	switch {
	case slips == 0:
		return 3
	case slips <= 2:
		return 2
	default:
		return 1
	}
}

func (t *Tracker) deduct(n int) int {
	if n > t.Points {
		n = t.Points
	}
	t.Points -= n
	return -n
}

func (t *Tracker) rate(outcome float64, z int) float64 {
	before := t.Rating
	t.Rating += K * (outcome - Expected(t.Rating, Difficulty(z)))
	if t.Rating < MinRating {
		t.Rating = MinRating
	}
	return t.Rating - before
}
