package market

import (
	"github.com/shopspring/decimal"
)

// Store is a tracked grocery retailer. Like Product it is referenced from
// prices by ID only.
type Store struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	WebsiteURL     string        `json:"website_url"`
	LogoURL        string        `json:"logo_url"`
	IsActive       bool          `json:"is_active"`
	ScraperEnabled bool          `json:"scraper_enabled"`
	CreatedAt      Time          `json:"created_at"`
	UpdatedAt      Time          `json:"updated_at"`
	Stats          *StoreSummary `json:"stats,omitempty"` // present when the caller asked to include stats
}

// StoreSummary is the condensed coverage blob attached to store listings and
// the store detail.
type StoreSummary struct {
	TotalProducts     int             `json:"total_products"`
	AvailableProducts int             `json:"available_products"`
	AvailabilityRate  decimal.Decimal `json:"availability_rate"`
	LastScraped       Time            `json:"last_scraped"`
}

// StoreDetail is a store plus the recent price updates the detail endpoint
// can attach.
type StoreDetail struct {
	Store
	RecentPrices []Price `json:"recent_prices,omitempty"`
}

// StoreStats summarises price activity for one store over a window of days.
type StoreStats struct {
	StoreID           int             `json:"store_id"`
	StoreName         string          `json:"store_name"`
	DateRangeDays     int             `json:"date_range_days"`
	TotalPricePoints  int             `json:"total_price_points"`
	UniqueProducts    int             `json:"unique_products"`
	AvgPrice          decimal.Decimal `json:"avg_price"`
	MinPrice          decimal.Decimal `json:"min_price"`
	MaxPrice          decimal.Decimal `json:"max_price"`
	AvailabilityRate  decimal.Decimal `json:"availability_rate"`
	UpdatesPerDay     decimal.Decimal `json:"price_updates_per_day"`
	CategoryBreakdown map[string]int  `json:"category_breakdown,omitempty"`
}

// StoreProduct is one row of a store's shelf: the latest quote for a product
// carried by that store.
type StoreProduct struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"product_category"`
	Amount      decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	LastUpdated Time            `json:"last_updated"`
}
