package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// StoreFilter narrows a store listing. Nil fields are not sent.
type StoreFilter struct {
	Skip         *int
	Limit        *int
	IsActive     *bool
	Search       *string // substring match on store names
	IncludeStats *bool   // attach the coverage summary to each store
}

func (f StoreFilter) query() url.Values {
	query := url.Values{}
	setInt(query, "skip", f.Skip)
	setInt(query, "limit", f.Limit)
	setBool(query, "is_active", f.IsActive)
	setString(query, "search", f.Search)
	setBool(query, "include_stats", f.IncludeStats)

	return query
}

// StorePage is one page of stores.
type StorePage struct {
	Stores   []market.Store `json:"stores"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	HasNext  bool           `json:"has_next"`
}

// StoreDetailOptions controls how many recent price updates the store detail
// endpoint attaches.
type StoreDetailOptions struct {
	IncludeRecentPrices *bool
	PriceLimit          *int
}

// StoreProductFilter narrows a store's shelf listing.
type StoreProductFilter struct {
	Skip        *int
	Limit       *int
	Category    *string
	IsAvailable *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// StoreProductPage is one page of a store's shelf, latest quote per product.
type StoreProductPage struct {
	StoreID   int                   `json:"store_id"`
	StoreName string                `json:"store_name"`
	Products  []market.StoreProduct `json:"products"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
	HasNext   bool                  `json:"has_next"`
}

// StoreCreate is the payload for registering a new store. The backend takes
// these as query parameters.
type StoreCreate struct {
	Name           string
	Description    *string
	WebsiteURL     *string
	LogoURL        *string
	ScraperEnabled *bool
}

// StoreUpdate is a partial store update. Nil fields are left unchanged.
type StoreUpdate struct {
	Name           *string
	Description    *string
	WebsiteURL     *string
	LogoURL        *string
	IsActive       *bool
	ScraperEnabled *bool
}

// Stores lists stores matching the filter.
func (c *Client) Stores(ctx context.Context, filter StoreFilter) (*StorePage, error) {
	page := &StorePage{}
	if err := c.do(ctx, http.MethodGet, RouteStores, filter.query(), nil, page); err != nil {
		return nil, errors.Wrap(err, "[Client.Stores] list stores")
	}

	return page, nil
}

// Store returns one store with its coverage summary and, when asked for,
// recent price updates.
func (c *Client) Store(ctx context.Context, storeID int, options StoreDetailOptions) (*market.StoreDetail, error) {
	query := url.Values{}
	setBool(query, "include_recent_prices", options.IncludeRecentPrices)
	setInt(query, "price_limit", options.PriceLimit)

	detail := &market.StoreDetail{}
	path := RouteStores + "/" + strconv.Itoa(storeID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, detail); err != nil {
		return nil, errors.Wrap(err, "[Client.Store] fetch store")
	}

	return detail, nil
}

// StoreProducts lists the products a store carries with their latest quotes,
// sorted by product name.
func (c *Client) StoreProducts(ctx context.Context, storeID int, filter StoreProductFilter) (*StoreProductPage, error) {
	query := url.Values{}
	setInt(query, "skip", filter.Skip)
	setInt(query, "limit", filter.Limit)
	setString(query, "category", filter.Category)
	setBool(query, "is_available", filter.IsAvailable)
	setDecimal(query, "min_price", filter.MinPrice)
	setDecimal(query, "max_price", filter.MaxPrice)

	page := &StoreProductPage{}
	path := RouteStores + "/" + strconv.Itoa(storeID) + "/products"
	if err := c.do(ctx, http.MethodGet, path, query, nil, page); err != nil {
		return nil, errors.Wrap(err, "[Client.StoreProducts] list store products")
	}

	return page, nil
}

// StoreStats aggregates one store's price activity over the last days.
// A nil days takes the backend default window.
func (c *Client) StoreStats(ctx context.Context, storeID int, days *int) (*market.StoreStats, error) {
	query := url.Values{}
	setInt(query, "days", days)

	stats := &market.StoreStats{}
	path := RouteStores + "/" + strconv.Itoa(storeID) + "/stats"
	if err := c.do(ctx, http.MethodGet, path, query, nil, stats); err != nil {
		return nil, errors.Wrap(err, "[Client.StoreStats] fetch stats")
	}

	return stats, nil
}

// CreateStore registers a new store. Admin only.
func (c *Client) CreateStore(ctx context.Context, create StoreCreate) (*market.Store, error) {
	query := url.Values{}
	query.Set("name", create.Name)
	setString(query, "description", create.Description)
	setString(query, "website_url", create.WebsiteURL)
	setString(query, "logo_url", create.LogoURL)
	setBool(query, "scraper_enabled", create.ScraperEnabled)

	store := &market.Store{}
	if err := c.do(ctx, http.MethodPost, RouteStores, query, nil, store); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateStore] create store")
	}

	return store, nil
}

// UpdateStore applies a partial update to a store. Admin only.
func (c *Client) UpdateStore(ctx context.Context, storeID int, update StoreUpdate) (*market.Store, error) {
	query := url.Values{}
	setString(query, "name", update.Name)
	setString(query, "description", update.Description)
	setString(query, "website_url", update.WebsiteURL)
	setString(query, "logo_url", update.LogoURL)
	setBool(query, "is_active", update.IsActive)
	setBool(query, "scraper_enabled", update.ScraperEnabled)

	store := &market.Store{}
	path := RouteStores + "/" + strconv.Itoa(storeID)
	if err := c.do(ctx, http.MethodPut, path, query, nil, store); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateStore] update store")
	}

	return store, nil
}

// DeleteStore deactivates a store. Admin only.
func (c *Client) DeleteStore(ctx context.Context, storeID int) (*Message, error) {
	message := &Message{}
	path := RouteStores + "/" + strconv.Itoa(storeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, message); err != nil {
		return nil, errors.Wrap(err, "[Client.DeleteStore] delete store")
	}

	return message, nil
}
