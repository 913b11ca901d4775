package campaign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/orbital/internal/campaign"
)

func TestLevels(t *testing.T) {
	require.Equal(t, 36, campaign.LevelCount())
	assert.Equal(t, "1. Hydrogen", campaign.GetLevel(0).Name())
	assert.Equal(t, "Kr", campaign.ForZ(36).Element.Symbol)
	assert.Nil(t, campaign.GetLevel(36))
	assert.Nil(t, campaign.ForZ(0))
	assert.Equal(t, []string{"Period 1", "Period 2", "Period 3", "Period 4"}, campaign.Chapters())
	assert.Less(t, campaign.GetLevel(0).Difficulty(), campaign.GetLevel(35).Difficulty())
}

func TestUnlocked(t *testing.T) {
	stars := map[int]int{}
	assert.True(t, campaign.Unlocked(stars, 0))
	assert.False(t, campaign.Unlocked(stars, 1))
	assert.False(t, campaign.Unlocked(stars, -1))

	stars[1] = 1
	assert.True(t, campaign.Unlocked(stars, 1))
	assert.False(t, campaign.Unlocked(stars, 2))
}

func TestNextUnplayed(t *testing.T) {
	assert.Equal(t, 1, campaign.NextUnplayed(nil).Element.Z)

	stars := map[int]int{1: 3, 2: 1}
	assert.Equal(t, 3, campaign.NextUnplayed(stars).Element.Z)

	all := map[int]int{}
	for z := 1; z <= campaign.LastZ; z++ {
		all[z] = 2
	}
	assert.Equal(t, 36, campaign.NextUnplayed(all).Element.Z)
}
