package models

// RewardCategory groups catalog rewards for the storefront
type RewardCategory string

const (
	RewardCategoryDiscount RewardCategory = "discount"
	RewardCategoryFreeItem RewardCategory = "free_item"
	RewardCategoryDelivery RewardCategory = "delivery"
	RewardCategoryPartner  RewardCategory = "partner"
)

// RewardConstraints describe how a voucher redeemed from this reward
// may be applied at checkout.
type RewardConstraints struct {
	ValidDays          int      `json:"valid_days"`
	UsageLimit         *int     `json:"usage_limit,omitempty"` // max active+used vouchers per user
	MinOrderAmount     *float64 `json:"min_order_amount,omitempty"`
	MaxDiscountPercent *int     `json:"max_discount_percent,omitempty"`
	Stackable          bool     `json:"stackable"`
}

// Reward is a catalog entry users exchange points for.
type Reward struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CostPoints  int               `json:"cost_points"`
	Category    RewardCategory    `json:"category"`
	Constraints RewardConstraints `json:"constraints"`
}

// MissionDef is a catalog mission definition; user state tracks completion.
type MissionDef struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	RewardPoints   int    `json:"reward_points"`
	DeepLinkTarget string `json:"deep_link_target,omitempty"`
}

// Catalog is the read-only input supplied by the catalog collaborator.
type Catalog struct {
	Rewards     []Reward     `json:"rewards"`
	WeekRewards [7]int       `json:"week_rewards"`
	Missions    []MissionDef `json:"missions"`
}

// FindReward returns the catalog entry with the given id, or nil.
func (c *Catalog) FindReward(id string) *Reward {
	for i := range c.Rewards {
		if c.Rewards[i].ID == id {
			return &c.Rewards[i]
		}
	}
	return nil
}
