package progress

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Achievement is an unlockable badge.
type Achievement struct {
	ID          string
	Name        string
	Description string
}

// Achievements lists every badge in display order.
var Achievements = []Achievement{
	{ID: "first-atom", Name: "First Atom", Description: "Complete any atom"},
	{ID: "noble-gas", Name: "Closed Shell", Description: "Complete He, Ne, Ar or Kr"},
	{ID: "flawless", Name: "Flawless", Description: "Earn three stars on an atom"},
	{ID: "hund-hero", Name: "Hund Hero", Description: "Fill a p or d subshell without a Hund violation"},
	{ID: "streak-25", Name: "Chain Reaction", Description: "Reach a streak of 25 correct placements"},
	{ID: "transition-metal", Name: "Transition Metal", Description: "Complete an atom from Sc to Zn"},
	{ID: "period-2", Name: "Second Row", Description: "Complete every atom from Li to Ne"},
}

// AchievementByID returns the achievement with id.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Completion describes a finished atom in campaign mode.
type Completion struct {
	Z          int
	Stars      int
	Points     int
	Mistakes   int
	Hints      int
	Hund       int
	BestStreak int
	Rating     float64
	// HasPorD is set when the atom has electrons in a p or d subshell.
	HasPorD bool
}

// Earned returns the achievement ids a completion qualifies for. levels is
// the set of atomic numbers completed so far, including this one.
func Earned(c Completion, levels map[int]LevelResult) []string {
	var out []string
	out = append(out, "first-atom")
	switch c.Z {
	case 2, 10, 18, 36:
		out = append(out, "noble-gas")
	}
	if c.Stars >= 3 {
		out = append(out, "flawless")
	}
	if c.HasPorD && c.Hund == 0 {
		out = append(out, "hund-hero")
	}
	if c.BestStreak >= 25 {
		out = append(out, "streak-25")
	}
	if c.Z >= 21 && c.Z <= 30 {
		out = append(out, "transition-metal")
	}
	period2 := true
	for z := 3; z <= 10; z++ {
		if levels[z].Completions == 0 {
			period2 = false
			break
		}
	}
	if period2 {
		out = append(out, "period-2")
	}
	return out
}

// RecordCompletion stores a finished atom, updates the running counters and
// unlocks any achievements it earned. It returns the newly unlocked ones.
func (s *Store) RecordCompletion(ctx context.Context, c Completion) ([]Achievement, error) {
	if _, err := s.RecordLevel(ctx, c.Z, c.Stars, c.Points); err != nil {
		return nil, err
	}

	incr := map[string]int64{
		CounterAtoms:      1,
		CounterPlacements: int64(c.Z),
		CounterMistakes:   int64(c.Mistakes),
		CounterHints:      int64(c.Hints),
		CounterPoints:     int64(c.Points),
	}
	for key, delta := range incr {
		if _, err := s.Incr(ctx, key, delta); err != nil {
			return nil, err
		}
	}
	if err := s.Max(ctx, CounterBestStreak, int64(c.BestStreak)); err != nil {
		return nil, err
	}
	if err := s.Set(ctx, CounterRating, int64(c.Rating+0.5)); err != nil {
		return nil, err
	}

	st, err := s.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stats: %w", err)
	}

	var unlocked []Achievement
	for _, id := range Earned(c, st.Levels) {
		fresh, err := s.Unlock(ctx, id)
		if err != nil {
			return unlocked, err
		}
		if a, ok := AchievementByID(id); ok && fresh {
			unlocked = append(unlocked, a)
		}
	}
	s.logger.Debug("completion recorded",
		zap.Int("z", c.Z),
		zap.Int("unlocked", len(unlocked)))
	return unlocked, nil
}
