// Package campaign defines the ordered atoms of campaign mode and how they
// unlock.
package campaign

import (
	"fmt"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/score"
)

// LastZ is the heaviest atom in the campaign.
const LastZ = 36

// Level is one campaign atom.
type Level struct {
	Index   int
	Element elements.Element
	Chapter string
}

// Name returns the display name, e.g. "6. Carbon".
func (l Level) Name() string {
	return fmt.Sprintf("%d. %s", l.Index+1, l.Element.Name)
}

// Difficulty returns the Elo difficulty of the level.
func (l Level) Difficulty() float64 {
	return score.Difficulty(l.Element.Z)
}

// Levels is the campaign, hydrogen through krypton.
var Levels = buildLevels()

func buildLevels() []Level {
	var out []Level
	for i, el := range elements.Range(1, LastZ) {
		out = append(out, Level{
			Index:   i,
			Element: el,
			Chapter: fmt.Sprintf("Period %d", el.Period()),
		})
	}
	return out
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// ForZ returns the level building atom z, or nil.
func ForZ(z int) *Level {
	return GetLevel(z - 1)
}

// Chapters returns the chapter names in order.
func Chapters() []string {
	var out []string
	for _, l := range Levels {
		if len(out) == 0 || out[len(out)-1] != l.Chapter {
			out = append(out, l.Chapter)
		}
	}
	return out
}

// Unlocked reports whether the level at index can be played given the best
// stars earned per atomic number. The first level is always open; every
// other level opens once the previous one has at least one star.
func Unlocked(stars map[int]int, index int) bool {
	if index <= 0 {
		return index == 0
	}
	prev := GetLevel(index - 1)
	if prev == nil {
		return false
	}
	return stars[prev.Element.Z] > 0
}

// NextUnplayed returns the first unlocked level without stars, or the last
// level when everything is done.
func NextUnplayed(stars map[int]int) *Level {
	for i := range Levels {
		if !Unlocked(stars, i) {
			break
		}
		if stars[Levels[i].Element.Z] == 0 {
			return &Levels[i]
		}
	}
	return &Levels[len(Levels)-1]
}
