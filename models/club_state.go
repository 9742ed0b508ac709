package models

import (
	"time"
)

// Level is the membership tier, a pure function of accumulated XP
type Level string

const (
	LevelSilver   Level = "silver"
	LevelGold     Level = "gold"
	LevelPlatinum Level = "platinum"
)

// ClubState is the full in-memory aggregate for one user's club membership.
// It is owned exclusively by the engine; handlers only read copies of it.
type ClubState struct {
	Points     int             `json:"points"`
	XP         int             `json:"xp"`
	Level      Level           `json:"level"`
	Vouchers   []Voucher       `json:"vouchers"` // newest first
	History    []HistoryEntry  `json:"history"`  // newest first, capped
	DailyBonus DailyBonusState `json:"daily_bonus"`
	Missions   []Mission       `json:"missions"`
}

// Clone returns a deep copy safe to hand to handlers while the engine
// keeps mutating the original.
func (s *ClubState) Clone() *ClubState {
	out := &ClubState{
		Points:     s.Points,
		XP:         s.XP,
		Level:      s.Level,
		DailyBonus: s.DailyBonus,
		Vouchers:   make([]Voucher, len(s.Vouchers)),
		History:    make([]HistoryEntry, len(s.History)),
		Missions:   make([]Mission, len(s.Missions)),
	}
	copy(out.Vouchers, s.Vouchers)
	copy(out.History, s.History)
	copy(out.Missions, s.Missions)
	if s.DailyBonus.NextClaimAt != nil {
		next := *s.DailyBonus.NextClaimAt
		out.DailyBonus.NextClaimAt = &next
	}
	return out
}

// ClubSnapshot is the persisted row: one JSON snapshot per user namespace.
// The snapshot is the sole durable record; there is no per-event table.
type ClubSnapshot struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Data      string    `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
