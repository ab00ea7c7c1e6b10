package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/internal/utils"
	"github.com/pkg/errors"
)

// runScraper monitors and steers the scraping fleet.
func (a *App) runScraper(ctx context.Context) error {
	if !a.mountProtected(ctx) {
		return nil
	}

	a.showScraper(ctx)

	for a.currentView() == RouteScraper {
		if ctx.Err() != nil {
			return nil
		}
		a.prompt(RouteScraper)
		line, err := a.readLine()
		if err != nil {
			return errQuit
		}
		cmd, args := splitCommand(line)
		handled, err := a.handleCommon(ctx, cmd)
		if err != nil {
			return err
		}
		if handled {
			continue
		}

		switch cmd {
		case "":
		case "refresh", "status":
			a.showScraper(ctx)
		case "trigger", "force":
			req := gateway.ScrapeRequest{}
			if cmd == "force" {
				req.Force = utils.Ptr(true)
			}
			if id, ok := argID(args); ok {
				req.StoreID = utils.Ptr(id)
			}
			job, err := a.client.TriggerScrape(ctx, req)
			if err != nil {
				a.printError(err)
				if isTooManyRequests(err) {
					fmt.Fprintln(a.out, Gray+"The stores were scraped recently. Use force to override."+ResetColor)
				}
				continue
			}
			a.renderScrapeJob(job)
		case "stop":
			var storeID *int
			if id, ok := argID(args); ok {
				storeID = utils.Ptr(id)
			}
			ack, err := a.client.StopScraper(ctx, storeID)
			if err != nil {
				a.printError(err)
				continue
			}
			fmt.Fprintln(a.out, ack.Message)
		case "resume":
			var storeID *int
			if id, ok := argID(args); ok {
				storeID = utils.Ptr(id)
			}
			ack, err := a.client.ResumeScraper(ctx, storeID)
			if err != nil {
				a.printError(err)
				continue
			}
			fmt.Fprintln(a.out, ack.Message)
		case "logs":
			logFilter := gateway.ScraperLogFilter{Limit: utils.Ptr(a.cfg.PageSize)}
			if len(args) > 0 {
				logFilter.Level = utils.Ptr(args[0])
			}
			logs, err := a.client.ScraperLogs(ctx, logFilter)
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderScrapeLogs(logs)
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type help for the list.\n", cmd)
		}
	}
	return nil
}

func (a *App) showScraper(ctx context.Context) {
	status, err := a.client.ScraperStatus(ctx, gateway.ScraperStatusFilter{})
	if err != nil {
		a.printError(err)
		return
	}
	health, err := a.client.ScraperHealth(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	a.renderScraperStatus(status, health)
}

// isTooManyRequests reports whether the backend throttled a scrape trigger.
func isTooManyRequests(err error) bool {
	var apiErr *gateway.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
