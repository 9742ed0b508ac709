package services

import (
	"testing"

	"club-rewards-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFindReward(t *testing.T) {
	catalog := NewCatalogService()

	reward := catalog.FindReward("dessert-on-us")
	require.NotNil(t, reward)
	assert.Equal(t, 80, reward.CostPoints)

	assert.Nil(t, catalog.FindReward("missing"))
}

func TestCatalogReplaceRejectsInvalid(t *testing.T) {
	catalog := NewCatalogService()

	assert.Error(t, catalog.Replace(nil))
	assert.Error(t, catalog.Replace(&models.Catalog{}))

	broken := DefaultCatalog
	broken.WeekRewards = [7]int{10, 20, 0, 40, 50, 75, 100}
	assert.Error(t, catalog.Replace(&broken))

	// last good catalog is untouched after a rejected swap
	assert.NotNil(t, catalog.FindReward("espresso-shot"))
}

func TestCatalogReplaceSwaps(t *testing.T) {
	catalog := NewCatalogService()

	next := models.Catalog{
		Rewards: []models.Reward{{
			ID:          "winter-special",
			Title:       "Winter Special",
			CostPoints:  90,
			Category:    models.RewardCategoryDiscount,
			Constraints: models.RewardConstraints{ValidDays: 10},
		}},
		WeekRewards: [7]int{5, 10, 15, 20, 25, 30, 50},
	}
	require.NoError(t, catalog.Replace(&next))

	assert.NotNil(t, catalog.FindReward("winter-special"))
	assert.Nil(t, catalog.FindReward("espresso-shot"))
	assert.Equal(t, [7]int{5, 10, 15, 20, 25, 30, 50}, catalog.Current().WeekRewards)
}
