package services

import (
	"testing"

	"club-rewards-system/models"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	cases := []struct {
		xp   int
		want models.Level
	}{
		{0, models.LevelSilver},
		{499, models.LevelSilver},
		{500, models.LevelGold},
		{1499, models.LevelGold},
		{1500, models.LevelPlatinum},
		{10000, models.LevelPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LevelOf(tc.xp), "xp=%d", tc.xp)
	}
}

func TestLevelMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, LevelMultiplier(models.LevelSilver))
	assert.Equal(t, 1.5, LevelMultiplier(models.LevelGold))
	assert.Equal(t, 2.0, LevelMultiplier(models.LevelPlatinum))
}

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 0, LevelProgress(0))
	assert.Equal(t, 50, LevelProgress(250))
	assert.Equal(t, 99, LevelProgress(499))
	assert.Equal(t, 0, LevelProgress(500))   // fresh gold
	assert.Equal(t, 50, LevelProgress(1000)) // halfway through gold
	assert.Equal(t, 100, LevelProgress(1500))
	assert.Equal(t, 100, LevelProgress(99999)) // saturates at the top tier
}
