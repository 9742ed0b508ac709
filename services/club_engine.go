package services

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"club-rewards-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	dailyBonusXP   = 5
	missionXPBonus = 10
	bonusCooldown  = 24 * time.Hour
)

// ClubEngine owns one user's ClubState. Every mutator is a serialized
// read-compute-write step under the engine mutex; the sweep takes the same
// mutex, so it can never observe a half-applied transition. Persistence is
// fire-and-forget through the StateStore.
type ClubEngine struct {
	userID  string
	store   *StateStore
	catalog *CatalogService

	mu    sync.Mutex
	state *models.ClubState
}

func newClubEngine(userID string, store *StateStore, catalog *CatalogService) *ClubEngine {
	e := &ClubEngine{
		userID:  userID,
		store:   store,
		catalog: catalog,
	}
	e.state = store.Load(userID)
	// corrective pass at load; the recurring job handles the rest
	if e.sweepLocked(time.Now()) {
		e.persist()
	}
	return e
}

func (e *ClubEngine) persist() {
	e.store.Save(e.userID, e.state)
}

// appendHistory prepends an entry (newest first) and enforces the cap.
func (e *ClubEngine) appendHistory(typ models.HistoryType, title string, points int, ts time.Time) {
	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Points:    points,
		Timestamp: ts,
	}
	e.state.History = append([]models.HistoryEntry{entry}, e.state.History...)
	if len(e.state.History) > models.MaxHistoryEntries {
		e.state.History = e.state.History[:models.MaxHistoryEntries]
	}
}

// addXPLocked credits XP and recomputes the tier. A tier crossing writes
// its own zero-point ledger line. XP has no debit path.
func (e *ClubEngine) addXPLocked(amount int, now time.Time) {
	e.state.XP += amount
	next := LevelOf(e.state.XP)
	if next != e.state.Level {
		e.state.Level = next
		e.appendHistory(models.HistoryTypeXPGain, fmt.Sprintf("Reached %s tier", next), 0, now)
	}
}

// AddPoints credits the balance unconditionally and logs one ledger line.
func (e *ClubEngine) AddPoints(amount int, reason string, typ models.HistoryType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Points += amount
	e.appendHistory(typ, reason, amount, time.Now())
	e.persist()
}

// SpendPoints is an atomic check-then-act debit. On insufficient balance
// nothing changes and a structured error is returned.
func (e *ClubEngine) SpendPoints(amount int, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.spendPointsLocked(amount, reason, time.Now()); err != nil {
		return err
	}
	e.persist()
	return nil
}

func (e *ClubEngine) spendPointsLocked(amount int, reason string, now time.Time) error {
	if e.state.Points < amount {
		return &InsufficientPointsError{Required: amount, Available: e.state.Points}
	}
	e.state.Points -= amount
	e.appendHistory(models.HistoryTypeRewardExchange, reason, -amount, now)
	return nil
}

// AddXP credits XP; with a non-empty reason it also logs a zero-point
// xp_gain line (the tier-crossing line is separate and unconditional).
func (e *ClubEngine) AddXP(amount int, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	e.addXPLocked(amount, now)
	if reason != "" {
		e.appendHistory(models.HistoryTypeXPGain, reason, 0, now)
	}
	e.persist()
}

// RedeemReward exchanges points for a new active voucher. The debit and the
// voucher creation happen in one step; a failed check leaves no trace.
func (e *ClubEngine) RedeemReward(rewardID string) (*models.Voucher, error) {
	reward := e.catalog.FindReward(rewardID)
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	// normalize stale statuses first so a long-expired voucher never
	// counts against the usage limit
	e.sweepLocked(now)
	if limit := reward.Constraints.UsageLimit; limit != nil {
		held := 0
		for i := range e.state.Vouchers {
			v := &e.state.Vouchers[i]
			if v.RewardID == reward.ID && v.Status != models.VoucherStatusExpired {
				held++
			}
		}
		if held >= *limit {
			return nil, &UsageLimitError{RewardID: reward.ID, Limit: *limit}
		}
	}
	if err := e.spendPointsLocked(reward.CostPoints, reward.Title, now); err != nil {
		return nil, err
	}

	voucher := models.Voucher{
		ID:          uuid.NewString(),
		RewardID:    reward.ID,
		Code:        voucherCode(reward.Title),
		Title:       reward.Title,
		Description: reward.Description,
		ApplyRules:  applyRules(reward.Constraints),
		ExpiresAt:   now.Add(time.Duration(reward.Constraints.ValidDays) * 24 * time.Hour),
		Status:      models.VoucherStatusActive,
		CreatedAt:   now,
	}
	e.state.Vouchers = append([]models.Voucher{voucher}, e.state.Vouchers...)
	e.persist()

	out := voucher
	return &out, nil
}

// UseVoucher marks an active voucher as used. The expiry check here is
// always time-based: a stale "active" status does not win over the clock,
// so correctness never depends on the sweep having run.
func (e *ClubEngine) UseVoucher(voucherID, orderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	var voucher *models.Voucher
	for i := range e.state.Vouchers {
		if e.state.Vouchers[i].ID == voucherID {
			voucher = &e.state.Vouchers[i]
			break
		}
	}
	if voucher == nil {
		return ErrVoucherNotFound
	}

	if voucher.ExpiredBy(now) {
		if voucher.Status == models.VoucherStatusActive {
			voucher.Status = models.VoucherStatusExpired
			e.persist()
		}
		return ErrVoucherExpired
	}
	switch voucher.Status {
	case models.VoucherStatusUsed:
		return ErrVoucherAlreadyUsed
	case models.VoucherStatusExpired:
		return ErrVoucherExpired
	}

	voucher.Status = models.VoucherStatusUsed
	voucher.OrderID = orderID
	e.appendHistory(models.HistoryTypeVoucherUse, voucher.Title, 0, now)
	e.persist()
	return nil
}

// BonusClaimResult reports one successful daily bonus claim.
type BonusClaimResult struct {
	Payout      int       `json:"payout"`
	StreakDay   int       `json:"streak_day"` // the day that was claimed
	NextClaimAt time.Time `json:"next_claim_at"`
}

// ClaimDailyBonus runs the available→cooldown transition: payout scaled by
// tier, +5 XP, streak advance (7 wraps to 1), 24h cooldown. An elapsed
// cooldown is reopened lazily here, without waiting for the sweep.
func (e *ClubEngine) ClaimDailyBonus() (*BonusClaimResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	bonus := &e.state.DailyBonus
	if bonus.Status == models.BonusStatusCooldown {
		if bonus.NextClaimAt != nil && now.Before(*bonus.NextClaimAt) {
			return nil, &CooldownActiveError{Remaining: bonus.NextClaimAt.Sub(now)}
		}
		bonus.Status = models.BonusStatusAvailable
		bonus.NextClaimAt = nil
	}

	claimedDay := bonus.StreakDay
	payout := int(math.Round(float64(bonus.WeekRewards[claimedDay-1]) * LevelMultiplier(e.state.Level)))

	e.state.Points += payout
	e.addXPLocked(dailyBonusXP, now)
	if claimedDay == 7 {
		bonus.StreakDay = 1
	} else {
		bonus.StreakDay = claimedDay + 1
	}
	next := now.Add(bonusCooldown)
	bonus.Status = models.BonusStatusCooldown
	bonus.NextClaimAt = &next

	e.appendHistory(models.HistoryTypeBonusClaim, fmt.Sprintf("Day %d streak bonus", claimedDay), payout, now)
	e.persist()

	return &BonusClaimResult{Payout: payout, StreakDay: claimedDay, NextClaimAt: next}, nil
}

// CompleteMission flips a pending mission to completed and pays out once.
// Calling it again for the same mission fails without a second payout.
func (e *ClubEngine) CompleteMission(missionID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	var mission *models.Mission
	for i := range e.state.Missions {
		if e.state.Missions[i].ID == missionID {
			mission = &e.state.Missions[i]
			break
		}
	}
	if mission == nil {
		return 0, ErrMissionNotFound
	}
	if mission.Status == models.MissionStatusCompleted {
		return 0, ErrMissionAlreadyCompleted
	}

	mission.Status = models.MissionStatusCompleted
	mission.CompletedAt = &now
	e.state.Points += mission.RewardPoints
	e.addXPLocked(missionXPBonus, now)
	e.appendHistory(models.HistoryTypeMissionComplete, mission.Title, mission.RewardPoints, now)
	e.persist()

	return mission.RewardPoints, nil
}

// ResetState discards the user's state and reseeds the defaults.
func (e *ClubEngine) ResetState() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = e.store.DefaultState()
	e.persist()
}

// Sweep runs the corrective pass: expire past-due active vouchers, reopen
// elapsed cooldowns. Idempotent; persists only when something changed.
func (e *ClubEngine) Sweep() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := e.sweepLocked(time.Now())
	if changed {
		e.persist()
	}
	return changed
}

func (e *ClubEngine) sweepLocked(now time.Time) bool {
	changed := false
	for i := range e.state.Vouchers {
		v := &e.state.Vouchers[i]
		if v.Status == models.VoucherStatusActive && v.ExpiredBy(now) {
			v.Status = models.VoucherStatusExpired
			changed = true
		}
	}
	bonus := &e.state.DailyBonus
	if bonus.Status == models.BonusStatusCooldown && bonus.NextClaimAt != nil && !now.Before(*bonus.NextClaimAt) {
		bonus.Status = models.BonusStatusAvailable
		bonus.NextClaimAt = nil
		changed = true
	}
	return changed
}

// State returns a deep copy of the current aggregate for read-only use.
func (e *ClubEngine) State() *models.ClubState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// VouchersByStatus partitions vouchers for the storefront. A voucher whose
// window has passed shows as expired even before the sweep flips it.
func (e *ClubEngine) VouchersByStatus(status models.VoucherStatus) []models.Voucher {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	out := []models.Voucher{}
	for _, v := range e.state.Vouchers {
		effective := v.Status
		if effective == models.VoucherStatusActive && v.ExpiredBy(now) {
			effective = models.VoucherStatusExpired
		}
		if effective == status {
			out = append(out, v)
		}
	}
	return out
}

// MissionsByStatus partitions missions into pending/completed views.
func (e *ClubEngine) MissionsByStatus(status models.MissionStatus) []models.Mission {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []models.Mission{}
	for _, m := range e.state.Missions {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// History returns up to limit newest-first ledger entries.
func (e *ClubEngine) History(limit int) []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if limit <= 0 || limit > len(e.state.History) {
		limit = len(e.state.History)
	}
	out := make([]models.HistoryEntry, limit)
	copy(out, e.state.History[:limit])
	return out
}

// HistorySince returns entries newer than the cursor, oldest first, for
// incremental consumers like the SSE stream.
func (e *ClubEngine) HistorySince(cursor time.Time) []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []models.HistoryEntry{}
	for i := len(e.state.History) - 1; i >= 0; i-- {
		if e.state.History[i].Timestamp.After(cursor) {
			out = append(out, e.state.History[i])
		}
	}
	return out
}

// Progress reports the tier progress percentage for the presentation layer.
func (e *ClubEngine) Progress() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return LevelProgress(e.state.XP)
}

// voucherCode builds a human-readable redemption code from the reward
// title plus a short random suffix.
func voucherCode(title string) string {
	return slug.Make(title) + "-" + strings.Split(uuid.NewString(), "-")[0]
}

// applyRules renders the reward constraints as the short usage text shown
// on the voucher card.
func applyRules(c models.RewardConstraints) string {
	parts := []string{}
	if c.MinOrderAmount != nil {
		parts = append(parts, fmt.Sprintf("min. order %.2f", *c.MinOrderAmount))
	}
	if c.MaxDiscountPercent != nil {
		parts = append(parts, fmt.Sprintf("up to %d%% off", *c.MaxDiscountPercent))
	}
	if c.Stackable {
		parts = append(parts, "stackable with other offers")
	} else {
		parts = append(parts, "not combinable with other offers")
	}
	parts = append(parts, fmt.Sprintf("valid %d days from redemption", c.ValidDays))
	return strings.Join(parts, ", ")
}
