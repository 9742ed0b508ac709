package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"club-rewards-system/models"
	"club-rewards-system/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshSwapsCatalogFromURL(t *testing.T) {
	next := models.Catalog{
		Rewards: []models.Reward{{
			ID:          "spring-special",
			Title:       "Spring Special",
			CostPoints:  70,
			Category:    models.RewardCategoryDiscount,
			Constraints: models.RewardConstraints{ValidDays: 14},
		}},
		WeekRewards: [7]int{5, 10, 15, 20, 25, 30, 50},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(next)
	}))
	defer server.Close()

	catalog := services.NewCatalogService()
	client := NewCatalogSyncClient(catalog)
	client.URL = server.URL

	require.NoError(t, client.Refresh(context.Background()))
	assert.NotNil(t, catalog.FindReward("spring-special"))
	assert.Nil(t, catalog.FindReward("espresso-shot"))
}

func TestRefreshKeepsLastGoodCatalogOnFailure(t *testing.T) {
	catalog := services.NewCatalogService()
	client := NewCatalogSyncClient(catalog)

	// no source configured at all
	client.URL = ""
	assert.Error(t, client.Refresh(context.Background()))

	// source up but serving garbage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()
	client.URL = server.URL
	assert.Error(t, client.Refresh(context.Background()))

	// broken catalog shape is rejected by validation
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rewards": []}`))
	}))
	defer empty.Close()
	client.URL = empty.URL
	assert.Error(t, client.Refresh(context.Background()))

	// built-in catalog survives every failed refresh
	assert.NotNil(t, catalog.FindReward("espresso-shot"))
}
