package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/pkg/errors"
)

// ProductFilter narrows a product listing. Nil fields are not sent.
type ProductFilter struct {
	Skip        *int
	Limit       *int
	Category    *string
	StoreID     *int // only products carried by this store
	IsAvailable *bool
	Search      *string // substring match on product names
}

func (f ProductFilter) query() url.Values {
	query := url.Values{}
	setInt(query, "skip", f.Skip)
	setInt(query, "limit", f.Limit)
	setString(query, "category", f.Category)
	setInt(query, "store_id", f.StoreID)
	setBool(query, "is_available", f.IsAvailable)
	setString(query, "search", f.Search)

	return query
}

// ProductPage is one page of products.
type ProductPage struct {
	Products []market.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasNext  bool             `json:"has_next"`
}

// ProductSearchPage is a relevance-ordered page of search hits.
type ProductSearchPage struct {
	Products []market.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasNext  bool             `json:"has_next"`
	Query    string           `json:"query"`
}

// SearchFilter narrows a product search beyond the query string.
type SearchFilter struct {
	Skip     *int
	Limit    *int
	Category *string
}

// CategoryList is the backend's distinct category listing.
type CategoryList struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

// ProductDetailOptions controls how much price context the product detail
// endpoint attaches. Nil fields take the backend defaults, which include the
// most recent quotes.
type ProductDetailOptions struct {
	IncludePrices *bool
	PriceLimit    *int
}

// ProductCreate is the payload for registering a new product. The backend
// takes these as query parameters.
type ProductCreate struct {
	Name        string
	Description *string
	Category    *string
	Brand       *string
	Unit        *string
}

// ProductUpdate is a partial product update. Nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Brand       *string
	Unit        *string
	IsActive    *bool
}

// Products lists products matching the filter.
func (c *Client) Products(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	page := &ProductPage{}
	if err := c.do(ctx, http.MethodGet, RouteProducts, filter.query(), nil, page); err != nil {
		return nil, errors.Wrap(err, "[Client.Products] list products")
	}

	return page, nil
}

// Product returns one product with its recent quotes attached.
func (c *Client) Product(ctx context.Context, productID int, options ProductDetailOptions) (*market.ProductDetail, error) {
	query := url.Values{}
	setBool(query, "include_prices", options.IncludePrices)
	setInt(query, "price_limit", options.PriceLimit)

	detail := &market.ProductDetail{}
	path := RouteProducts + "/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, detail); err != nil {
		return nil, errors.Wrap(err, "[Client.Product] fetch product")
	}

	return detail, nil
}

// SearchProducts searches product names, most relevant first. The query
// string must be at least two characters.
func (c *Client) SearchProducts(ctx context.Context, q string, filter SearchFilter) (*ProductSearchPage, error) {
	query := url.Values{}
	query.Set("q", q)
	setInt(query, "skip", filter.Skip)
	setInt(query, "limit", filter.Limit)
	setString(query, "category", filter.Category)

	page := &ProductSearchPage{}
	if err := c.do(ctx, http.MethodGet, RouteProductsSearch, query, nil, page); err != nil {
		return nil, errors.Wrap(err, "[Client.SearchProducts] search products")
	}

	return page, nil
}

// Categories lists the distinct product categories, sorted.
func (c *Client) Categories(ctx context.Context) (*CategoryList, error) {
	categories := &CategoryList{}
	if err := c.do(ctx, http.MethodGet, RouteProductsCategories, nil, nil, categories); err != nil {
		return nil, errors.Wrap(err, "[Client.Categories] list categories")
	}

	return categories, nil
}

// ProductStats aggregates one product's price behaviour over the last days.
// A nil days takes the backend default window.
func (c *Client) ProductStats(ctx context.Context, productID int, days *int) (*market.ProductStats, error) {
	query := url.Values{}
	setInt(query, "days", days)

	stats := &market.ProductStats{}
	path := RouteProducts + "/" + strconv.Itoa(productID) + "/stats"
	if err := c.do(ctx, http.MethodGet, path, query, nil, stats); err != nil {
		return nil, errors.Wrap(err, "[Client.ProductStats] fetch stats")
	}

	return stats, nil
}

// CreateProduct registers a new product. Admin only.
func (c *Client) CreateProduct(ctx context.Context, create ProductCreate) (*market.Product, error) {
	query := url.Values{}
	query.Set("name", create.Name)
	setString(query, "description", create.Description)
	setString(query, "category", create.Category)
	setString(query, "brand", create.Brand)
	setString(query, "unit", create.Unit)

	product := &market.Product{}
	if err := c.do(ctx, http.MethodPost, RouteProducts, query, nil, product); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateProduct] create product")
	}

	return product, nil
}

// UpdateProduct applies a partial update to a product. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, productID int, update ProductUpdate) (*market.Product, error) {
	query := url.Values{}
	setString(query, "name", update.Name)
	setString(query, "description", update.Description)
	setString(query, "category", update.Category)
	setString(query, "brand", update.Brand)
	setString(query, "unit", update.Unit)
	setBool(query, "is_active", update.IsActive)

	product := &market.Product{}
	path := RouteProducts + "/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodPut, path, query, nil, product); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateProduct] update product")
	}

	return product, nil
}

// DeleteProduct retires a product. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, productID int) (*Message, error) {
	message := &Message{}
	path := RouteProducts + "/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, message); err != nil {
		return nil, errors.Wrap(err, "[Client.DeleteProduct] delete product")
	}

	return message, nil
}
