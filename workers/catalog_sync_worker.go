package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"club-rewards-system/models"
	"club-rewards-system/services"
	"club-rewards-system/utils"
)

// CatalogSyncClient refreshes the reward catalog from its published source:
// an R2 object when configured, else a plain HTTPS URL. The catalog is
// read-only input; a failed refresh keeps the last good catalog in place.
type CatalogSyncClient struct {
	Catalog   *services.CatalogService
	ObjectKey string
	URL       string
}

func NewCatalogSyncClient(catalog *services.CatalogService) *CatalogSyncClient {
	key := os.Getenv("CATALOG_OBJECT_KEY")
	if key == "" {
		key = "catalog/club.json"
	}
	return &CatalogSyncClient{
		Catalog:   catalog,
		ObjectKey: key,
		URL:       os.Getenv("CATALOG_URL"),
	}
}

func (c *CatalogSyncClient) fetch(ctx context.Context) ([]byte, error) {
	if utils.R2Configured() {
		return utils.FetchObjectFromR2(ctx, c.ObjectKey)
	}
	if c.URL == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := utils.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call catalog source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("catalog source returned status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// Refresh fetches, parses and swaps in the catalog once.
func (c *CatalogSyncClient) Refresh(ctx context.Context) error {
	data, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	return c.Catalog.Replace(&catalog)
}

// PollCatalog refreshes the catalog on a fixed interval until ctx is done.
func PollCatalog(ctx context.Context, client *CatalogSyncClient, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// initial refresh so the service doesn't wait a full interval
	if err := client.Refresh(ctx); err != nil {
		log.Printf("[CatalogSync] initial refresh failed, keeping built-in catalog: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[CatalogSync] stopping")
			return
		case <-ticker.C:
			if err := client.Refresh(ctx); err != nil {
				log.Printf("[CatalogSync] refresh failed: %v", err)
			}
		}
	}
}
