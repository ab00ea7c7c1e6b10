package market

import (
	"github.com/shopspring/decimal"
)

// TrendPoint is one bucket of a historical price trend. Date is the backend's
// bucket label and varies with the requested grouping ("2025-01-15",
// "2025-01-15 10:00" or "2025-W03"), so it stays a string.
type TrendPoint struct {
	Date             string          `json:"date"`
	AvgPrice         decimal.Decimal `json:"avg_price"`
	MinPrice         decimal.Decimal `json:"min_price"`
	MaxPrice         decimal.Decimal `json:"max_price"`
	AvailabilityRate decimal.Decimal `json:"availability_rate"`
	DataPoints       int             `json:"data_points"`
}

// PriceStats is the aggregate view across all tracked prices in a window.
type PriceStats struct {
	TotalPrices      int             `json:"total_prices"`
	AvgPrice         decimal.Decimal `json:"avg_price"`
	MinPrice         decimal.Decimal `json:"min_price"`
	MaxPrice         decimal.Decimal `json:"max_price"`
	AvailabilityRate decimal.Decimal `json:"availability_rate"`
	UniqueProducts   int             `json:"unique_products"`
	UniqueStores     int             `json:"unique_stores"`
	DateRangeDays    int             `json:"date_range_days"`
}
