package dashboard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/jrsteele09/go-price-dashboard/users"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// Tables stay uncolored: ANSI escapes would throw off tabwriter's column
// widths. Colors go on titles, banners and free-standing lines only.

func (a *App) title(text string) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, CyanInverse+" "+text+" "+ResetColor)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// kv writes aligned label/value rows.
func (a *App) kv(pairs ...string) {
	w := a.table()
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(w, "%s\t%s\n", pairs[i], pairs[i+1])
	}
	w.Flush()
}

func (a *App) pageFooter(page, pageSize, total int, hasNext bool) {
	more := ""
	if hasNext {
		more = ", next for more"
	}
	fmt.Fprintf(a.out, Gray+"Page %d, %d per page, %d total%s"+ResetColor+"\n", page, pageSize, total, more)
}

// renderPrices draws the polling resource's current facets: rows, an error
// banner over stale rows, or the loading and empty states.
func (a *App) renderPrices() {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	items := a.prices.Items()
	a.title("Latest prices")
	if err := a.prices.Err(); err != nil {
		fmt.Fprintln(a.out, Red+"Last fetch failed: "+err.Error()+ResetColor)
		if len(items) > 0 {
			fmt.Fprintln(a.out, Gray+"Showing previously loaded rows."+ResetColor)
		}
	}

	switch {
	case len(items) == 0 && a.prices.Loading():
		fmt.Fprintln(a.out, "Loading...")
	case len(items) == 0 && a.prices.Err() == nil:
		fmt.Fprintln(a.out, "No prices match.")
	case len(items) == 0:
	default:
		w := a.table()
		fmt.Fprintln(w, "ID\tPRODUCT\tSTORE\tPRICE\tCHANGE\tIN STOCK\tDEAL\tOBSERVED")
		for _, p := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, truncate(p.ProductName, 32), truncate(p.StoreName, 20), p.DisplayAmount(),
				formatChange(p.ChangePercent), yesNo(p.IsAvailable), dealMarker(p), formatTime(p.ObservedAt))
		}
		w.Flush()
	}
}

func (a *App) renderDeals() {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	var deals []market.Price
	for _, p := range a.prices.Items() {
		if p.IsGoodDeal() {
			deals = append(deals, p)
		}
	}

	a.title("Deals on this page")
	if len(deals) == 0 {
		fmt.Fprintln(a.out, "No standout discounts on the current page.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "PRODUCT\tSTORE\tNOW\tWAS\tSAVE\tOFF")
	for _, p := range deals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\n",
			truncate(p.ProductName, 32), truncate(p.StoreName, 20), p.DisplayAmount(),
			p.OriginalPrice.StringFixed(2), p.DiscountAmount().StringFixed(2), p.DiscountPercentage.StringFixed(0))
	}
	w.Flush()
}

func (a *App) renderTrend(productID int, points []market.TrendPoint) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Price trend for product %d", productID))
	if len(points) == 0 {
		fmt.Fprintln(a.out, "No trend data in this window.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "DATE\tAVG\tMIN\tMAX\tAVAILABILITY\tPOINTS")
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			p.Date, p.AvgPrice.StringFixed(2), p.MinPrice.StringFixed(2), p.MaxPrice.StringFixed(2),
			formatRate(p.AvailabilityRate), p.DataPoints)
	}
	w.Flush()
}

func (a *App) renderPriceStats(stats *market.PriceStats) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Market statistics, last %d days", stats.DateRangeDays))
	a.kv(
		"Price points", strconv.Itoa(stats.TotalPrices),
		"Average price", money(stats.AvgPrice),
		"Cheapest", money(stats.MinPrice),
		"Most expensive", money(stats.MaxPrice),
		"Availability", formatRate(stats.AvailabilityRate),
		"Products tracked", strconv.Itoa(stats.UniqueProducts),
		"Stores tracked", strconv.Itoa(stats.UniqueStores),
	)
}

func (a *App) renderComparison(productID int, prices []market.Price) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Product %d across stores", productID))
	if len(prices) == 0 {
		fmt.Fprintln(a.out, "No store carries this product right now.")
		return
	}
	a.writeQuoteTable(prices)
}

// writeQuoteTable lists quotes for a single product, one store per row.
func (a *App) writeQuoteTable(prices []market.Price) {
	w := a.table()
	fmt.Fprintln(w, "STORE\tPRICE\tCHANGE\tIN STOCK\tOBSERVED")
	for _, p := range prices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(p.StoreName, 24), p.DisplayAmount(), formatChange(p.ChangePercent),
			yesNo(p.IsAvailable), formatTime(p.ObservedAt))
	}
	w.Flush()
}

func (a *App) renderProducts(page *gateway.ProductPage) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title("Products")
	if len(page.Products) == 0 {
		fmt.Fprintln(a.out, "No products match.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tUNIT\tORGANIC")
	for _, p := range page.Products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(p.Name, 36), p.Category, truncate(p.Brand, 16), p.Unit, yesNo(p.IsOrganic))
	}
	w.Flush()
	a.pageFooter(page.Page, page.PageSize, page.Total, page.HasNext)
}

func (a *App) renderSearchResults(page *gateway.ProductSearchPage) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Search %q", page.Query))
	if len(page.Products) == 0 {
		fmt.Fprintln(a.out, "Nothing found.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tRELEVANCE")
	for _, p := range page.Products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			p.ID, truncate(p.Name, 36), p.Category, truncate(p.Brand, 16), p.Relevance)
	}
	w.Flush()
	a.pageFooter(page.Page, page.PageSize, page.Total, page.HasNext)
}

func (a *App) renderProductDetail(detail *market.ProductDetail) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(detail.Name)
	if detail.Description != "" {
		fmt.Fprintln(a.out, detail.Description)
	}
	category := detail.Category
	if detail.Subcategory != "" {
		category += " / " + detail.Subcategory
	}
	a.kv(
		"Category", category,
		"Brand", detail.Brand,
		"Unit", detail.Unit,
		"Organic", yesNo(detail.IsOrganic),
		"Listed", yesNo(detail.IsActive),
		"Added", formatTime(detail.CreatedAt),
	)
	if stats := detail.PriceStats; stats != nil {
		fmt.Fprintln(a.out)
		a.kv(
			"Cheapest", money(stats.MinPrice),
			"Most expensive", money(stats.MaxPrice),
			"Average", money(stats.AvgPrice),
			"Stocked by", fmt.Sprintf("%d of %d stores", stats.AvailableStores, stats.TotalStores),
		)
	}
	if len(detail.Prices) > 0 {
		fmt.Fprintln(a.out, "\nRecent quotes:")
		a.writeQuoteTable(detail.Prices)
	}
}

func (a *App) renderCategories(list *gateway.CategoryList) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Categories (%d)", list.Total))
	for _, category := range list.Categories {
		fmt.Fprintln(a.out, "  "+category)
	}
}

func (a *App) renderProductStats(stats *market.ProductStats) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("%s, last %d days", stats.Name, stats.DateRangeDays))
	a.kv(
		"Category", stats.Category,
		"Price points", strconv.Itoa(stats.TotalPrices),
		"Average price", money(stats.AvgPrice),
		"Cheapest", money(stats.MinPrice),
		"Most expensive", money(stats.MaxPrice),
		"Availability", formatRate(stats.AvailabilityRate),
		"Stores carrying", strconv.Itoa(stats.StoreCount),
		"Trend", formatChange(stats.TrendPercent),
	)
}

func (a *App) renderStores(page *gateway.StorePage) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title("Stores")
	if len(page.Stores) == 0 {
		fmt.Fprintln(a.out, "No stores match.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tACTIVE\tSCRAPER\tPRODUCTS\tAVAILABILITY\tLAST SCRAPE")
	for _, s := range page.Stores {
		products, rate, last := "-", "-", "-"
		if s.Stats != nil {
			products = strconv.Itoa(s.Stats.TotalProducts)
			rate = formatRate(s.Stats.AvailabilityRate)
			last = formatTime(s.Stats.LastScraped)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, truncate(s.Name, 24), yesNo(s.IsActive), yesNo(s.ScraperEnabled), products, rate, last)
	}
	w.Flush()
	a.pageFooter(page.Page, page.PageSize, page.Total, page.HasNext)
}

func (a *App) renderStoreDetail(detail *market.StoreDetail) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(detail.Name)
	if detail.Description != "" {
		fmt.Fprintln(a.out, detail.Description)
	}
	pairs := []string{
		"Website", detail.WebsiteURL,
		"Active", yesNo(detail.IsActive),
		"Scraper", yesNo(detail.ScraperEnabled),
	}
	if stats := detail.Stats; stats != nil {
		pairs = append(pairs,
			"Products tracked", strconv.Itoa(stats.TotalProducts),
			"Available now", strconv.Itoa(stats.AvailableProducts),
			"Availability", formatRate(stats.AvailabilityRate),
			"Last scraped", formatTime(stats.LastScraped),
		)
	}
	a.kv(pairs...)

	if len(detail.RecentPrices) > 0 {
		fmt.Fprintln(a.out, "\nRecent price updates:")
		w := a.table()
		fmt.Fprintln(w, "PRODUCT\tPRICE\tIN STOCK\tOBSERVED")
		for _, p := range detail.RecentPrices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(p.ProductName, 36), p.DisplayAmount(), yesNo(p.IsAvailable), formatTime(p.ObservedAt))
		}
		w.Flush()
	}
}

func (a *App) renderShelf(page *gateway.StoreProductPage) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("%s shelf", page.StoreName))
	if len(page.Products) == 0 {
		fmt.Fprintln(a.out, "Nothing on the shelf matches.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tPRODUCT\tCATEGORY\tPRICE\tIN STOCK\tUPDATED")
	for _, p := range page.Products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ProductID, truncate(p.ProductName, 36), p.Category, money(p.Amount),
			yesNo(p.IsAvailable), formatTime(p.LastUpdated))
	}
	w.Flush()
	a.pageFooter(page.Page, page.PageSize, page.Total, page.HasNext)
}

func (a *App) renderStoreStats(stats *market.StoreStats) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("%s, last %d days", stats.StoreName, stats.DateRangeDays))
	a.kv(
		"Price points", strconv.Itoa(stats.TotalPricePoints),
		"Products seen", strconv.Itoa(stats.UniqueProducts),
		"Average price", money(stats.AvgPrice),
		"Cheapest", money(stats.MinPrice),
		"Most expensive", money(stats.MaxPrice),
		"Availability", formatRate(stats.AvailabilityRate),
		"Updates per day", stats.UpdatesPerDay.StringFixed(1),
	)
	if len(stats.CategoryBreakdown) > 0 {
		fmt.Fprintln(a.out, "By category:")
		w := a.table()
		categories := maps.Keys(stats.CategoryBreakdown)
		slices.Sort(categories)
		for _, category := range categories {
			fmt.Fprintf(w, "  %s\t%d\n", category, stats.CategoryBreakdown[category])
		}
		w.Flush()
	}
}

func (a *App) renderScraperStatus(status *market.ScraperStatus, health *market.ScraperHealth) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title("Scraper fleet")
	fmt.Fprintf(a.out, "Activity: %s   Health: %s\n", colourStatus(status.Status), colourStatus(health.Status))
	a.kv(
		fmt.Sprintf("Updates (last %dh)", status.TimeRangeHours), strconv.Itoa(status.TotalUpdates),
		"Stores scraped", strconv.Itoa(status.StoresScraped),
		"Products updated", strconv.Itoa(status.ProductsUpdated),
		"Updates per hour", status.UpdatesPerHour.StringFixed(1),
		"Last activity", formatTime(status.LastActivity),
		"Store coverage", formatRate(health.Uptime.StoresCoverage),
	)
	if len(health.Issues) > 0 {
		fmt.Fprintln(a.out, Yellow+"Issues:"+ResetColor)
		for _, issue := range health.Issues {
			fmt.Fprintln(a.out, "  - "+issue)
		}
	}
	if len(status.RecentActivity) > 0 {
		fmt.Fprintln(a.out, "Recent updates:")
		w := a.table()
		fmt.Fprintln(w, "STORE\tPRODUCT\tPRICE\tIN STOCK\tAT")
		for _, act := range status.RecentActivity {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(act.StoreName, 20), truncate(act.ProductName, 32), money(act.Price),
				yesNo(act.IsAvailable), formatTime(act.ObservedAt))
		}
		w.Flush()
	}
}

func (a *App) renderScrapeJob(job *market.ScrapeJob) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title("Scrape queued")
	fmt.Fprintln(a.out, job.Message)
	pairs := []string{
		"Task", job.TaskID,
		"Status", colourStatus(job.Status),
	}
	if job.Parameters.StoreID != nil {
		pairs = append(pairs, "Store", strconv.Itoa(*job.Parameters.StoreID))
	}
	if job.Parameters.ProductID != nil {
		pairs = append(pairs, "Product", strconv.Itoa(*job.Parameters.ProductID))
	}
	if job.Parameters.Force {
		pairs = append(pairs, "Forced", "yes")
	}
	if job.Parameters.DryRun {
		pairs = append(pairs, "Dry run", "yes")
	}
	a.kv(pairs...)
}

func (a *App) renderScrapeLogs(logs *market.ScrapeLogs) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(fmt.Sprintf("Scraper logs, last %dh", logs.TimeRangeHours))
	fmt.Fprintf(a.out, "%d entries. Errors %d, warnings %d, info %d.\n",
		logs.TotalLogs, logs.Summary.ErrorCount, logs.Summary.WarningCount, logs.Summary.InfoCount)
	if len(logs.Logs) == 0 {
		return
	}
	w := a.table()
	fmt.Fprintln(w, "TIME\tLEVEL\tSTORE\tMESSAGE")
	for _, entry := range logs.Logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatTime(entry.Timestamp), strings.ToUpper(entry.Level), truncate(entry.StoreName, 20),
			truncate(entry.Message, 60))
	}
	w.Flush()
}

func (a *App) renderUser(user *users.User, token *credentials.TokenDetails) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title(user.DisplayName())
	pairs := []string{
		"Email", user.Email,
		"Username", user.Username,
		"Active", yesNo(user.IsActive),
		"Admin", yesNo(user.IsAdmin),
		"Member since", formatTime(user.CreatedAt),
	}
	if token != nil && !token.ExpiresAt.IsZero() {
		pairs = append(pairs, "Session expires", formatTime(market.NewTime(token.ExpiresAt)))
	}
	a.kv(pairs...)
}

var commonHelp = []string{
	"dashboard / products / stores / scraper   switch views",
	"me        show the signed-in profile",
	"renew     swap the token for a fresh one",
	"logout    sign out locally",
	"help      this list",
	"quit      leave",
}

var viewHelp = map[string][]string{
	RouteLogin: {
		"login            sign in with username and password",
		"register         create an account",
		"forgot <email>   request a password reset",
		"reset <token>    confirm a password reset",
		"quit             leave",
	},
	RouteDashboard: {
		"refresh              fetch the latest prices now",
		"next / prev          page through the price rows",
		"category <name|->    filter by category, - clears",
		"deals                show the discounts on this page",
		"trends <id> [days]   price history for a product",
		"stats                market-wide statistics",
		"compare <id>         one product across every store",
		"sync                 ask the backend to refresh its data",
	},
	RouteProducts: {
		"list                 reload the product page",
		"search <terms>       full-text product search",
		"show <id>            product detail with recent quotes",
		"categories           list the known categories",
		"stats <id> [days]    price statistics for a product",
		"next / prev          page through the listing",
		"category <name|->    filter by category, - clears",
	},
	RouteStores: {
		"list                 reload the store list",
		"show <id>            store detail with recent updates",
		"shelf <id>           what the store carries right now",
		"stats <id> [days]    price statistics for a store",
	},
	RouteScraper: {
		"status            current activity and health",
		"trigger [store]   queue a scrape, optionally one store",
		"force [store]     queue a scrape even if recently run",
		"stop [store]      halt scraping",
		"resume [store]    resume scraping",
		"logs [level]      recent scraper logs",
	},
}

func (a *App) renderHelp(view string) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	a.title("Commands")
	for _, line := range viewHelp[view] {
		fmt.Fprintln(a.out, "  "+line)
	}
	if view != RouteLogin {
		fmt.Fprintln(a.out)
		for _, line := range commonHelp {
			fmt.Fprintln(a.out, "  "+line)
		}
	}
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + market.Currency
}

func formatChange(percent decimal.Decimal) string {
	if percent.IsZero() {
		return "-"
	}
	sign := ""
	if percent.IsPositive() {
		sign = "+"
	}
	return sign + percent.StringFixed(1) + "%"
}

func formatRate(rate decimal.Decimal) string {
	return rate.StringFixed(1) + "%"
}

func formatTime(t market.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dealMarker(p market.Price) string {
	if p.IsGoodDeal() {
		return "deal"
	}
	if p.IsDiscounted {
		return "disc"
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
