package gateway

// Backend route constants
// All backend paths are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Session Lifecycle
	RouteAuthLogin     = "/auth/login"
	RouteAuthLoginJSON = "/auth/login-json"
	RouteAuthRegister  = "/auth/register"
	RouteAuthSession   = "/auth/session"
	RouteAuthRefresh   = "/auth/refresh"
	RouteAuthLogout    = "/auth/logout"

	// Auth Routes - Account
	RouteAuthMe                   = "/auth/me"
	RouteAuthPasswordReset        = "/auth/password-reset"
	RouteAuthPasswordResetConfirm = "/auth/password-reset-confirm"

	// Price Routes
	RoutePrices        = "/prices"
	RoutePricesRefresh = "/prices/refresh"
	RoutePricesTrends  = "/prices/trends"
	RoutePricesStats   = "/prices/stats"
	RoutePricesCompare = "/prices/compare"

	// Product Routes
	RouteProducts           = "/products"
	RouteProductsSearch     = "/products/search"
	RouteProductsCategories = "/products/categories/list"

	// Store Routes
	RouteStores = "/stores"

	// Scraper Routes
	RouteScraperTrigger = "/scraper/trigger"
	RouteScraperStatus  = "/scraper/status"
	RouteScraperLogs    = "/scraper/logs"
	RouteScraperHealth  = "/scraper/health"
	RouteScraperStop    = "/scraper/stop"
	RouteScraperResume  = "/scraper/resume"
)
