package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceFilter narrows a price listing. Nil fields are not sent, leaving the
// backend defaults in charge.
type PriceFilter struct {
	Skip        *int             // records to skip
	Limit       *int             // page size, backend caps at 100
	ProductID   *int             // single product
	StoreID     *int             // single store
	Category    *string          // product category
	IsAvailable *bool            // in-stock filter
	DateFrom    *time.Time       // observations on or after, date precision
	DateTo      *time.Time       // observations on or before, date precision
	MinPrice    *decimal.Decimal // lower price bound
	MaxPrice    *decimal.Decimal // upper price bound
}

func (f PriceFilter) query() url.Values {
	query := url.Values{}
	setInt(query, "skip", f.Skip)
	setInt(query, "limit", f.Limit)
	setInt(query, "product_id", f.ProductID)
	setInt(query, "store_id", f.StoreID)
	setString(query, "category", f.Category)
	setBool(query, "is_available", f.IsAvailable)
	setDate(query, "date_from", f.DateFrom)
	setDate(query, "date_to", f.DateTo)
	setDecimal(query, "min_price", f.MinPrice)
	setDecimal(query, "max_price", f.MaxPrice)

	return query
}

// PricePage is one page of price observations.
type PricePage struct {
	Prices   []market.Price `json:"prices"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	HasNext  bool           `json:"has_next"`
}

// RefreshScope narrows a price refresh to one store, one product, or both.
// The zero value refreshes everything.
type RefreshScope struct {
	StoreID   *int
	ProductID *int
}

// TrendFilter shapes a trend query. Days defaults to a week on the backend;
// GroupBy is one of "hour", "day" or "week".
type TrendFilter struct {
	Days    *int
	StoreID *int
	GroupBy *string
}

// StatsFilter narrows price statistics to a product, a store, or a window of
// days.
type StatsFilter struct {
	ProductID *int
	StoreID   *int
	Days      *int
}

// Prices lists price observations matching the filter.
func (c *Client) Prices(ctx context.Context, filter PriceFilter) (*PricePage, error) {
	page := &PricePage{}
	if err := c.do(ctx, http.MethodGet, RoutePrices, filter.query(), nil, page); err != nil {
		return nil, errors.Wrap(err, "[Client.Prices] list prices")
	}

	return page, nil
}

// RefreshPrices asks the backend to re-scrape prices within the given scope.
// The work happens in the background; the reply only acknowledges it.
func (c *Client) RefreshPrices(ctx context.Context, scope RefreshScope) (*Message, error) {
	query := url.Values{}
	setInt(query, "store_id", scope.StoreID)
	setInt(query, "product_id", scope.ProductID)

	message := &Message{}
	if err := c.do(ctx, http.MethodPost, RoutePricesRefresh, query, nil, message); err != nil {
		return nil, errors.Wrap(err, "[Client.RefreshPrices] request refresh")
	}

	return message, nil
}

// PriceTrends returns bucketed price history for one product. Bucket labels
// follow the grouping: days are dates, hours carry the hour, weeks the ISO
// week.
func (c *Client) PriceTrends(ctx context.Context, productID int, filter TrendFilter) ([]market.TrendPoint, error) {
	query := url.Values{}
	query.Set("product_id", strconv.Itoa(productID))
	setInt(query, "days", filter.Days)
	setInt(query, "store_id", filter.StoreID)
	setString(query, "group_by", filter.GroupBy)

	trends := []market.TrendPoint{}
	if err := c.do(ctx, http.MethodGet, RoutePricesTrends, query, nil, &trends); err != nil {
		return nil, errors.Wrap(err, "[Client.PriceTrends] fetch trends")
	}

	return trends, nil
}

// PriceStats aggregates price statistics over the filtered window.
func (c *Client) PriceStats(ctx context.Context, filter StatsFilter) (*market.PriceStats, error) {
	query := url.Values{}
	setInt(query, "product_id", filter.ProductID)
	setInt(query, "store_id", filter.StoreID)
	setInt(query, "days", filter.Days)

	stats := &market.PriceStats{}
	if err := c.do(ctx, http.MethodGet, RoutePricesStats, query, nil, stats); err != nil {
		return nil, errors.Wrap(err, "[Client.PriceStats] fetch stats")
	}

	return stats, nil
}

// ComparePrices returns the latest price of one product in every store that
// carries it, cheapest first.
func (c *Client) ComparePrices(ctx context.Context, productID int) ([]market.Price, error) {
	prices := []market.Price{}
	path := RoutePricesCompare + "/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &prices); err != nil {
		return nil, errors.Wrap(err, "[Client.ComparePrices] compare prices")
	}

	return prices, nil
}
