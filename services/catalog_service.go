package services

import (
	"fmt"
	"sync"

	"club-rewards-system/models"
)

// DefaultCatalog ships with the service so the engine works before (or
// without) a remote catalog object being configured.
var DefaultCatalog = models.Catalog{
	Rewards: []models.Reward{
		{
			ID:          "espresso-shot",
			Title:       "Free Espresso Shot",
			Description: "One espresso shot on the house with any drink",
			CostPoints:  60,
			Category:    models.RewardCategoryFreeItem,
			Constraints: models.RewardConstraints{ValidDays: 14, Stackable: true},
		},
		{
			ID:          "dessert-on-us",
			Title:       "Dessert On Us",
			Description: "Any dessert from the standard menu, free with your order",
			CostPoints:  80,
			Category:    models.RewardCategoryFreeItem,
			Constraints: models.RewardConstraints{ValidDays: 7, UsageLimit: intPtr(2), MinOrderAmount: floatPtr(15)},
		},
		{
			ID:          "ten-percent-off",
			Title:       "10% Off Your Order",
			Description: "10% discount on one order",
			CostPoints:  120,
			Category:    models.RewardCategoryDiscount,
			Constraints: models.RewardConstraints{ValidDays: 30, MaxDiscountPercent: intPtr(10), MinOrderAmount: floatPtr(20)},
		},
		{
			ID:          "free-delivery",
			Title:       "Free Delivery",
			Description: "Delivery fee waived on one order",
			CostPoints:  150,
			Category:    models.RewardCategoryDelivery,
			Constraints: models.RewardConstraints{ValidDays: 30, UsageLimit: intPtr(3), Stackable: true},
		},
		{
			ID:          "partner-day-pass",
			Title:       "Partner Gym Day Pass",
			Description: "One-day pass at any partner gym",
			CostPoints:  400,
			Category:    models.RewardCategoryPartner,
			Constraints: models.RewardConstraints{ValidDays: 60, UsageLimit: intPtr(1)},
		},
	},
	WeekRewards: [7]int{10, 20, 30, 40, 50, 75, 100},
	Missions: []models.MissionDef{
		{ID: "first-order", Title: "Place your first order", RewardPoints: 50, DeepLinkTarget: "order/new"},
		{ID: "rate-an-order", Title: "Rate an order", RewardPoints: 20, DeepLinkTarget: "orders/history"},
		{ID: "invite-a-friend", Title: "Invite a friend", RewardPoints: 100},
		{ID: "link-payment-card", Title: "Link a payment card", RewardPoints: 30, DeepLinkTarget: "wallet/cards"},
	},
}

// CatalogService holds the current read-only catalog. The catalog sync
// worker may swap it at runtime; readers always see a consistent snapshot.
type CatalogService struct {
	mu      sync.RWMutex
	catalog models.Catalog
}

func NewCatalogService() *CatalogService {
	return &CatalogService{catalog: DefaultCatalog}
}

// Current returns the active catalog snapshot. Callers must not mutate it.
func (s *CatalogService) Current() models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// FindReward looks up a reward by id in the active catalog.
func (s *CatalogService) FindReward(id string) *models.Reward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.FindReward(id)
}

// Replace swaps in a freshly fetched catalog after basic sanity checks, so
// a truncated or half-filled remote object can never blank the storefront.
func (s *CatalogService) Replace(c *models.Catalog) error {
	if c == nil || len(c.Rewards) == 0 {
		return fmt.Errorf("catalog has no rewards")
	}
	for _, r := range c.Rewards {
		if r.ID == "" || r.CostPoints <= 0 || r.Constraints.ValidDays <= 0 {
			return fmt.Errorf("invalid catalog reward %q", r.ID)
		}
	}
	for _, day := range c.WeekRewards {
		if day <= 0 {
			return fmt.Errorf("week rewards table must have 7 positive payouts")
		}
	}
	s.mu.Lock()
	s.catalog = *c
	s.mu.Unlock()
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
