package gateway

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// dateOnlyLayout is the backend's date filter format.
const dateOnlyLayout = "2006-01-02"

func setInt(query url.Values, key string, value *int) {
	if value != nil {
		query.Set(key, strconv.Itoa(*value))
	}
}

func setString(query url.Values, key string, value *string) {
	if value != nil && *value != "" {
		query.Set(key, *value)
	}
}

func setBool(query url.Values, key string, value *bool) {
	if value != nil {
		query.Set(key, strconv.FormatBool(*value))
	}
}

func setDate(query url.Values, key string, value *time.Time) {
	if value != nil && !value.IsZero() {
		query.Set(key, value.Format(dateOnlyLayout))
	}
}

func setDecimal(query url.Values, key string, value *decimal.Decimal) {
	if value != nil {
		query.Set(key, value.String())
	}
}
