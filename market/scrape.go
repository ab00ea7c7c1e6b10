package market

import (
	"github.com/shopspring/decimal"
)

// ScrapeJob acknowledges a queued scraping run.
type ScrapeJob struct {
	Message    string          `json:"message"`
	TaskID     string          `json:"task_id"`
	Status     string          `json:"status"`
	Parameters ScrapeJobParams `json:"parameters"`
}

type ScrapeJobParams struct {
	StoreID   *int `json:"store_id"`
	ProductID *int `json:"product_id"`
	UserID    int  `json:"user_id"`
	DryRun    bool `json:"dry_run"`
	Force     bool `json:"force"`
}

// ScraperStatus is the rolling activity report for the scraping fleet.
// Status is one of "active", "idle" or "inactive".
type ScraperStatus struct {
	Status          string                      `json:"status"`
	TotalUpdates    int                         `json:"total_updates"`
	StoresScraped   int                         `json:"stores_scraped"`
	ProductsUpdated int                         `json:"products_updated"`
	LastActivity    Time                        `json:"last_activity"`
	UpdatesPerHour  decimal.Decimal             `json:"updates_per_hour"`
	TimeRangeHours  int                         `json:"time_range_hours"`
	StoreBreakdown  map[string]StoreScrapeStats `json:"store_breakdown,omitempty"`
	RecentActivity  []ScrapeActivity            `json:"recent_activity"`
}

type StoreScrapeStats struct {
	StoreID    int  `json:"store_id"`
	Updates    int  `json:"updates"`
	LastUpdate Time `json:"last_update"`
}

// ScrapeActivity is one recently observed price update.
type ScrapeActivity struct {
	StoreID     int             `json:"store_id"`
	StoreName   string          `json:"store_name"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	ObservedAt  Time            `json:"scraped_at"`
}

// ScrapeLogs is a filtered slice of scraper log entries plus level counts.
type ScrapeLogs struct {
	Logs           []ScrapeLogEntry `json:"logs"`
	TotalLogs      int              `json:"total_logs"`
	TimeRangeHours int              `json:"time_range_hours"`
	FilterLevel    string           `json:"filter_level"`
	Summary        ScrapeLogSummary `json:"summary"`
}

type ScrapeLogEntry struct {
	Timestamp Time           `json:"timestamp"`
	Level     string         `json:"level"`
	StoreID   int            `json:"store_id"`
	StoreName string         `json:"store_name"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

type ScrapeLogSummary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`
}

// ScraperHealth is the scraping subsystem's health check result.
type ScraperHealth struct {
	Status    string               `json:"status"`
	Timestamp Time                 `json:"timestamp"`
	Metrics   ScraperHealthMetrics `json:"metrics"`
	Issues    []string             `json:"issues"`
	Uptime    ScraperUptime        `json:"uptime_info"`
}

type ScraperHealthMetrics struct {
	RecentUpdates        int  `json:"recent_updates"`
	ActiveStores         int  `json:"active_stores"`
	StoresWithRecentData int  `json:"stores_with_recent_data"`
	TotalProducts        int  `json:"total_products"`
	LastScrape           Time `json:"last_scrape"`
}

type ScraperUptime struct {
	SystemHealthy   bool            `json:"system_healthy"`
	ScrapersRunning bool            `json:"scrapers_running"`
	StoresCoverage  decimal.Decimal `json:"stores_coverage"`
}
