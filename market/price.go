package market

import (
	"github.com/shopspring/decimal"
)

// Currency is the fixed display currency for every price the backend reports.
const Currency = "EGP"

// goodDealThreshold is the discount percentage above which a discounted price
// counts as a deal.
var goodDealThreshold = decimal.NewFromInt(15)

// Price is one observed price for a product at a store. Prices are immutable
// snapshots: a fresh fetch replaces the whole collection, records are never
// patched in place.
type Price struct {
	ID                 int             `json:"id"`
	ProductID          int             `json:"product_id"`
	StoreID            int             `json:"store_id"`
	Amount             decimal.Decimal `json:"price"`                // current shelf price
	OriginalPrice      decimal.Decimal `json:"original_price"`      // pre-discount price, zero when not discounted
	PricePerKg         decimal.Decimal `json:"price_per_kg"`        // normalised unit price, zero when unknown
	ChangePercent      decimal.Decimal `json:"price_change_percent"` // movement since the previous observation
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	IsDiscounted       bool            `json:"is_discounted"`
	IsOnSale           bool            `json:"is_on_sale"`
	IsOrganic          bool            `json:"is_organic"`
	IsAvailable        bool            `json:"is_available"`
	PackSize           string          `json:"pack_size"`
	PackUnit           string          `json:"pack_unit"`
	ProductName        string          `json:"product_name"` // denormalised for display
	StoreName          string          `json:"store_name"`   // denormalised for display
	ProductURL         string          `json:"product_url"`
	ImageURL           string          `json:"image_url"`
	ObservedAt         Time            `json:"scraped_at"`
}

// DiscountAmount returns the absolute saving against the original price, or
// zero when the price is not discounted.
func (p Price) DiscountAmount() decimal.Decimal {
	if !p.IsDiscounted || p.OriginalPrice.IsZero() {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Amount)
}

// IsGoodDeal reports whether the price is discounted by more than the deal
// threshold.
func (p Price) IsGoodDeal() bool {
	return p.IsDiscounted && p.DiscountPercentage.GreaterThan(goodDealThreshold)
}

// DisplayAmount renders the price with the fixed currency code.
func (p Price) DisplayAmount() string {
	return p.Amount.StringFixed(2) + " " + Currency
}
