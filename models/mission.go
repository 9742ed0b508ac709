package models

import "time"

type MissionStatus string

const (
	MissionStatusPending   MissionStatus = "pending"
	MissionStatusCompleted MissionStatus = "completed" // terminal
)

// Mission is a one-shot task with a point payout on completion.
type Mission struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	RewardPoints int           `json:"reward_points"`
	Status       MissionStatus `json:"status"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}
