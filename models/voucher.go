package models

import "time"

// VoucherStatus is the lifecycle state of a redeemed voucher.
// Active and used are entered only by engine mutation; expired is entered
// by the sweep or discovered lazily at use time.
type VoucherStatus string

const (
	VoucherStatusActive  VoucherStatus = "active"
	VoucherStatusUsed    VoucherStatus = "used"
	VoucherStatusExpired VoucherStatus = "expired"
)

// Voucher is a redeemed reward instance with a bounded validity window.
type Voucher struct {
	ID          string        `json:"id"`
	RewardID    string        `json:"reward_id"`
	Code        string        `json:"code"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ApplyRules  string        `json:"apply_rules"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Status      VoucherStatus `json:"status"`
	OrderID     string        `json:"order_id,omitempty"` // set when used against an order
	CreatedAt   time.Time     `json:"created_at"`
}

// ExpiredBy reports whether the voucher's validity window has passed,
// regardless of what Status currently reads.
func (v *Voucher) ExpiredBy(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
