package services

import "club-rewards-system/models"

// XP thresholds per tier. Level is always the pure function of XP below;
// it is recomputed on every XP change, never stored independently of it.
const (
	GoldXPThreshold     = 500
	PlatinumXPThreshold = 1500
)

func LevelOf(xp int) models.Level {
	switch {
	case xp >= PlatinumXPThreshold:
		return models.LevelPlatinum
	case xp >= GoldXPThreshold:
		return models.LevelGold
	default:
		return models.LevelSilver
	}
}

// LevelMultiplier scales the daily bonus payout by tier.
func LevelMultiplier(level models.Level) float64 {
	switch level {
	case models.LevelPlatinum:
		return 2.0
	case models.LevelGold:
		return 1.5
	default:
		return 1.0
	}
}

// LevelProgress returns the percentage (0–100) through the current tier's
// XP band, saturating at 100 for platinum.
func LevelProgress(xp int) int {
	switch {
	case xp >= PlatinumXPThreshold:
		return 100
	case xp >= GoldXPThreshold:
		return (xp - GoldXPThreshold) * 100 / (PlatinumXPThreshold - GoldXPThreshold)
	default:
		return xp * 100 / GoldXPThreshold
	}
}
