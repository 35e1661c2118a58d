package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/MarcGrol/agentcommerce/services/adapters"
)

// Product is the synced copy of a platform product, owned by one tenant.
// A CompareAtPrice of zero means there is no compare-at price.
type Product struct {
	ID                string
	TenantID          string
	ExternalID        string
	ExternalURL       string `datastore:",noindex"`
	SKU               string
	Title             string
	Description       string `datastore:",noindex"`
	Price             float64
	CompareAtPrice    float64
	Currency          string
	Images            []adapters.Image
	InventoryQuantity int
	InventoryPolicy   adapters.InventoryPolicy
	TrackInventory    bool
	ProductType       string
	Vendor            string
	Tags              []string
	Status            adapters.ProductStatus
	SyncedAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// productID is stable per tenant and platform product so a re-sync updates in place.
func productID(tenantID string, externalID string) string {
	sum := sha256.Sum256([]byte(tenantID + ":" + externalID))
	return "prod_" + hex.EncodeToString(sum[:])[:24]
}

func fromAdapterProduct(tenantID string, p adapters.Product, now time.Time) Product {
	externalID := p.ExternalID
	if externalID == "" {
		externalID = p.ID
	}
	compareAtPrice := 0.0
	if p.CompareAtPrice != nil {
		compareAtPrice = *p.CompareAtPrice
	}
	status := p.Status
	if status == "" {
		status = adapters.ProductStatusActive
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	return Product{
		ID:                productID(tenantID, externalID),
		TenantID:          tenantID,
		ExternalID:        externalID,
		ExternalURL:       p.ExternalURL,
		SKU:               p.SKU,
		Title:             p.Title,
		Description:       p.Description,
		Price:             p.Price,
		CompareAtPrice:    compareAtPrice,
		Currency:          currency,
		Images:            p.Images,
		InventoryQuantity: p.InventoryQuantity,
		InventoryPolicy:   p.InventoryPolicy,
		TrackInventory:    p.TrackInventory,
		ProductType:       p.ProductType,
		Vendor:            p.Vendor,
		Tags:              p.Tags,
		Status:            status,
		SyncedAt:          now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SearchQuery filters the active products of a tenant. Prices are in dollars.
type SearchQuery struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type Page struct {
	Products []Product
	Total    int
	Limit    int
	Offset   int
	HasMore  bool
}
