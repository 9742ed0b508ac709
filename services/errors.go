package services

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule failures are values, never panics. Handlers map them to
// 4xx responses; the engine never mutates state when returning one.
var (
	ErrRewardNotFound          = errors.New("reward not found in catalog")
	ErrVoucherNotFound         = errors.New("voucher not found")
	ErrVoucherAlreadyUsed      = errors.New("voucher already used")
	ErrVoucherExpired          = errors.New("voucher has expired")
	ErrMissionNotFound         = errors.New("mission not found")
	ErrMissionAlreadyCompleted = errors.New("mission already completed")
)

// InsufficientPointsError carries the balance gap so the client can show
// "need X, have Y" without parsing the message.
type InsufficientPointsError struct {
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d, have %d", e.Required, e.Available)
}

// UsageLimitError is returned when a reward's per-user voucher limit
// (counting active and used vouchers) is already met.
type UsageLimitError struct {
	RewardID string
	Limit    int
}

func (e *UsageLimitError) Error() string {
	return fmt.Sprintf("usage limit reached for reward %s (max %d)", e.RewardID, e.Limit)
}

// CooldownActiveError carries the remaining wait for a daily bonus claim
// attempted before the cooldown elapsed.
type CooldownActiveError struct {
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("daily bonus not ready, next claim in %s", e.Remaining.Round(time.Second))
}
