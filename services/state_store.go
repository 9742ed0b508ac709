package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"club-rewards-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const welcomeBonusPoints = 150

// StateStore persists one ClubState snapshot per user namespace.
// Load never fails: missing or corrupt rows fall back to the default
// state, and write failures are swallowed; the in-memory state stays
// authoritative for the running session.
type StateStore struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewStateStore(db *gorm.DB, catalog *CatalogService) *StateStore {
	return &StateStore{DB: db, Catalog: catalog}
}

// Load reads the snapshot for userID, back-filling anything missing so
// every returned state satisfies the engine invariants.
func (s *StateStore) Load(userID string) *models.ClubState {
	var snap models.ClubSnapshot
	if err := s.DB.First(&snap, "user_id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[StateStore] read failed for %s: %v — starting from defaults", userID, err)
		}
		return s.DefaultState()
	}

	var state models.ClubState
	if err := json.Unmarshal([]byte(snap.Data), &state); err != nil {
		log.Printf("[StateStore] corrupt snapshot for %s: %v — starting from defaults", userID, err)
		return s.DefaultState()
	}

	s.migrate(&state)
	return &state
}

// Save writes the snapshot after a successful mutation. Errors are logged
// and dropped; the next successful write reconciles the row.
func (s *StateStore) Save(userID string, state *models.ClubState) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("[StateStore] marshal failed for %s: %v", userID, err)
		return
	}
	snap := models.ClubSnapshot{UserID: userID, Data: string(data)}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		log.Printf("[StateStore] save failed for %s: %v — keeping in-memory state", userID, err)
	}
}

// DefaultState builds a fresh membership seeded with the welcome bonus.
func (s *StateStore) DefaultState() *models.ClubState {
	now := time.Now()
	cat := s.Catalog.Current()

	missions := make([]models.Mission, 0, len(cat.Missions))
	for _, def := range cat.Missions {
		missions = append(missions, models.Mission{
			ID:           def.ID,
			Title:        def.Title,
			RewardPoints: def.RewardPoints,
			Status:       models.MissionStatusPending,
		})
	}

	return &models.ClubState{
		Points:   welcomeBonusPoints,
		XP:       0,
		Level:    LevelOf(0),
		Vouchers: []models.Voucher{},
		History: []models.HistoryEntry{{
			ID:        uuid.NewString(),
			Type:      models.HistoryTypeBonusClaim,
			Title:     "Welcome bonus",
			Points:    welcomeBonusPoints,
			Timestamp: now,
		}},
		DailyBonus: models.DailyBonusState{
			Status:      models.BonusStatusAvailable,
			StreakDay:   1,
			WeekRewards: cat.WeekRewards,
		},
		Missions: missions,
	}
}

// migrate back-fills fields a partial or older snapshot may lack, so the
// engine never sees an invariant-violating state. Applied once, at the
// load boundary.
func (s *StateStore) migrate(state *models.ClubState) {
	def := s.DefaultState()

	if state.Points < 0 {
		log.Printf("[StateStore] negative balance %d in snapshot, clamping to 0", state.Points)
		state.Points = 0
	}
	if state.XP < 0 {
		state.XP = 0
	}
	state.Level = LevelOf(state.XP)

	if state.Vouchers == nil {
		state.Vouchers = []models.Voucher{}
	}
	if state.History == nil {
		state.History = []models.HistoryEntry{}
	}
	if len(state.History) > models.MaxHistoryEntries {
		state.History = state.History[:models.MaxHistoryEntries]
	}
	if len(state.Missions) == 0 {
		state.Missions = def.Missions
	}

	db := &state.DailyBonus
	if db.StreakDay < 1 || db.StreakDay > 7 {
		db.StreakDay = 1
	}
	hasWeekTable := false
	for _, v := range db.WeekRewards {
		if v != 0 {
			hasWeekTable = true
			break
		}
	}
	if !hasWeekTable {
		db.WeekRewards = def.DailyBonus.WeekRewards
	}
	switch db.Status {
	case models.BonusStatusAvailable:
		db.NextClaimAt = nil
	case models.BonusStatusCooldown:
		if db.NextClaimAt == nil {
			// cooldown without a deadline can never reopen; treat as available
			db.Status = models.BonusStatusAvailable
		}
	default:
		db.Status = models.BonusStatusAvailable
		db.NextClaimAt = nil
	}
}
