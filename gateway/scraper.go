package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/pkg/errors"
)

// ScrapeRequest narrows a scraping run and sets its mode. Nil fields take
// the backend defaults: all active stores, every product, no force, real run.
type ScrapeRequest struct {
	StoreID   *int
	ProductID *int
	Force     *bool // scrape even if the store was scraped recently
	DryRun    *bool // simulate without saving data
}

// ScraperStatusFilter narrows the activity report.
type ScraperStatusFilter struct {
	StoreID *int
	Hours   *int // look-back window, backend caps at a week
}

// ScraperLogFilter narrows the log listing.
type ScraperLogFilter struct {
	StoreID *int
	Level   *string // minimum level: DEBUG, INFO, WARNING or ERROR
	Hours   *int
	Limit   *int
}

// ScraperStopAck acknowledges a stop order.
type ScraperStopAck struct {
	Message   string      `json:"message"`
	StoppedAt market.Time `json:"stopped_at"`
	StoppedBy string      `json:"stopped_by"`
}

// ScraperResumeAck acknowledges a resume order.
type ScraperResumeAck struct {
	Message   string      `json:"message"`
	ResumedAt market.Time `json:"resumed_at"`
	ResumedBy string      `json:"resumed_by"`
}

// TriggerScrape queues a scraping run. The backend rejects a run with 429
// when the store was scraped within the last half hour and Force is not set.
func (c *Client) TriggerScrape(ctx context.Context, req ScrapeRequest) (*market.ScrapeJob, error) {
	query := url.Values{}
	setInt(query, "store_id", req.StoreID)
	setInt(query, "product_id", req.ProductID)
	setBool(query, "force", req.Force)
	setBool(query, "dry_run", req.DryRun)

	job := &market.ScrapeJob{}
	if err := c.do(ctx, http.MethodPost, RouteScraperTrigger, query, nil, job); err != nil {
		return nil, errors.Wrap(err, "[Client.TriggerScrape] queue scrape")
	}

	return job, nil
}

// ScraperStatus reports recent scraping activity and per-store breakdowns.
func (c *Client) ScraperStatus(ctx context.Context, filter ScraperStatusFilter) (*market.ScraperStatus, error) {
	query := url.Values{}
	setInt(query, "store_id", filter.StoreID)
	setInt(query, "hours", filter.Hours)

	status := &market.ScraperStatus{}
	if err := c.do(ctx, http.MethodGet, RouteScraperStatus, query, nil, status); err != nil {
		return nil, errors.Wrap(err, "[Client.ScraperStatus] fetch status")
	}

	return status, nil
}

// ScraperLogs lists recent scraper log entries with level counts.
func (c *Client) ScraperLogs(ctx context.Context, filter ScraperLogFilter) (*market.ScrapeLogs, error) {
	query := url.Values{}
	setInt(query, "store_id", filter.StoreID)
	setString(query, "level", filter.Level)
	setInt(query, "hours", filter.Hours)
	setInt(query, "limit", filter.Limit)

	logs := &market.ScrapeLogs{}
	if err := c.do(ctx, http.MethodGet, RouteScraperLogs, query, nil, logs); err != nil {
		return nil, errors.Wrap(err, "[Client.ScraperLogs] fetch logs")
	}

	return logs, nil
}

// ScraperHealth returns the scraping subsystem's health verdict.
func (c *Client) ScraperHealth(ctx context.Context) (*market.ScraperHealth, error) {
	health := &market.ScraperHealth{}
	if err := c.do(ctx, http.MethodGet, RouteScraperHealth, nil, nil, health); err != nil {
		return nil, errors.Wrap(err, "[Client.ScraperHealth] fetch health")
	}

	return health, nil
}

// StopScraper halts scraping for one store, or for all stores when storeID
// is nil. Admin only.
func (c *Client) StopScraper(ctx context.Context, storeID *int) (*ScraperStopAck, error) {
	query := url.Values{}
	setInt(query, "store_id", storeID)

	ack := &ScraperStopAck{}
	if err := c.do(ctx, http.MethodPost, RouteScraperStop, query, nil, ack); err != nil {
		return nil, errors.Wrap(err, "[Client.StopScraper] stop scraper")
	}

	return ack, nil
}

// ResumeScraper restarts scraping for one store, or for all stores when
// storeID is nil. Admin only.
func (c *Client) ResumeScraper(ctx context.Context, storeID *int) (*ScraperResumeAck, error) {
	query := url.Values{}
	setInt(query, "store_id", storeID)

	ack := &ScraperResumeAck{}
	if err := c.do(ctx, http.MethodPost, RouteScraperResume, query, nil, ack); err != nil {
		return nil, errors.Wrap(err, "[Client.ResumeScraper] resume scraper")
	}

	return ack, nil
}
