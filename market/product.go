package market

import (
	"github.com/shopspring/decimal"
)

// Product is a reference entity identified by its integer ID. Prices point at
// products by ID rather than embedding them.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Brand       string      `json:"brand"`
	Unit        string      `json:"unit"`
	IsOrganic   bool        `json:"is_organic"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   Time        `json:"created_at"`
	UpdatedAt   Time        `json:"updated_at"`
	Relevance   int         `json:"relevance,omitempty"`    // search ranking score, search results only
	LatestPrice *PriceQuote `json:"latest_price,omitempty"` // populated by store-scoped product listings
}

// PriceQuote is the condensed price the backend attaches to store-scoped
// product listings.
type PriceQuote struct {
	Amount      decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	ObservedAt  Time            `json:"scraped_at"`
}

// ProductStats summarises recent price activity for one product.
type ProductStats struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	TotalPrices      int             `json:"total_prices"`
	AvgPrice         decimal.Decimal `json:"avg_price"`
	MinPrice         decimal.Decimal `json:"min_price"`
	MaxPrice         decimal.Decimal `json:"max_price"`
	AvailabilityRate decimal.Decimal `json:"availability_rate"`
	StoreCount       int             `json:"store_count"`
	TrendPercent     decimal.Decimal `json:"price_trend_percent"` // average drift over the window
	DateRangeDays    int             `json:"date_range_days"`
}

// ProductDetail is a product plus the recent quotes the detail endpoint
// attaches to it.
type ProductDetail struct {
	Product
	Prices     []Price            `json:"prices,omitempty"`
	PriceStats *ProductPriceStats `json:"price_stats,omitempty"`
}

// ProductPriceStats summarises the quotes attached to a ProductDetail.
type ProductPriceStats struct {
	MinPrice        decimal.Decimal `json:"min_price"`
	MaxPrice        decimal.Decimal `json:"max_price"`
	AvgPrice        decimal.Decimal `json:"avg_price"`
	AvailableStores int             `json:"available_stores"`
	TotalStores     int             `json:"total_stores"`
}
