package models

import "time"

type HistoryType string

const (
	HistoryTypeBonusClaim      HistoryType = "bonus_claim"
	HistoryTypeMissionComplete HistoryType = "mission_complete"
	HistoryTypeRewardExchange  HistoryType = "reward_exchange"
	HistoryTypeVoucherUse      HistoryType = "voucher_use"
	HistoryTypeXPGain          HistoryType = "xp_gain"
)

// MaxHistoryEntries caps the ledger. Older entries are dropped silently;
// the Points/XP fields on ClubState are the source of truth, not the log.
const MaxHistoryEntries = 100

// HistoryEntry is one append-only ledger line. Points is a signed delta;
// zero is allowed for non-monetary events (voucher use, level ups).
type HistoryEntry struct {
	ID        string      `json:"id"`
	Type      HistoryType `json:"type"`
	Title     string      `json:"title"`
	Points    int         `json:"points"`
	Timestamp time.Time   `json:"timestamp"`
}
