package dashboard

// Dashboard view constants
// All view names are defined here to ensure consistency and prevent typos

const (
	// Public views
	RouteLogin = "login"

	// Protected views
	RouteDashboard = "dashboard" // live price overview
	RouteProducts  = "products"
	RouteStores    = "stores"
	RouteScraper   = "scraper"
)
