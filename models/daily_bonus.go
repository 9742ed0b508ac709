package models

import "time"

// BonusStatus is the daily bonus state machine: available ⇄ cooldown.
type BonusStatus string

const (
	BonusStatusAvailable BonusStatus = "available"
	BonusStatusCooldown  BonusStatus = "cooldown"
)

// DailyBonusState tracks the weekly claim streak. StreakDay cycles 1–7.
// WeekRewards is copied from the catalog when the state is first created,
// so a later catalog change never shifts an in-flight week.
type DailyBonusState struct {
	Status      BonusStatus `json:"status"`
	NextClaimAt *time.Time  `json:"next_claim_at,omitempty"`
	StreakDay   int         `json:"streak_day"`
	WeekRewards [7]int      `json:"week_rewards"`
}
