package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/internal/utils"
	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/jrsteele09/go-price-dashboard/polling"
	"github.com/rs/zerolog/log"
)

// runDashboard shows the live price table. It is the one view with a ticker:
// the polling resource refreshes in the background while the prompt waits
// for a command.
func (a *App) runDashboard(ctx context.Context) error {
	if !a.mountProtected(ctx) {
		return nil
	}

	filter := gateway.PriceFilter{Limit: utils.Ptr(a.cfg.PageSize)}
	a.reloadPrices(ctx, filter)

	stop := make(chan struct{})
	defer close(stop)
	go a.autoRefresh(ctx, stop)

	for a.currentView() == RouteDashboard {
		if ctx.Err() != nil {
			return nil
		}
		a.prompt(RouteDashboard)
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
		case "refresh":
			if err := a.prices.Refresh(ctx); err != nil {
				log.Debug().Err(err).Msg("manual price refresh failed")
			}
			a.renderPrices()
		case "next":
			filter.Skip = utils.Ptr(utils.Value(filter.Skip) + a.cfg.PageSize)
			a.reloadPrices(ctx, filter)
		case "prev":
			skip := utils.Value(filter.Skip) - a.cfg.PageSize
			if skip < 0 {
				skip = 0
			}
			filter.Skip = utils.Ptr(skip)
			a.reloadPrices(ctx, filter)
		case "category":
			if len(args) == 0 || args[0] == "-" {
				filter.Category = nil
			} else {
				filter.Category = utils.Ptr(strings.Join(args, " "))
			}
			filter.Skip = nil
			a.reloadPrices(ctx, filter)
		case "deals":
			a.renderDeals()
		case "trends":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: trends <product-id> [days]")
				continue
			}
			points, err := a.client.PriceTrends(ctx, id, gateway.TrendFilter{Days: argDays(args, 1)})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderTrend(id, points)
		case "stats":
			stats, err := a.client.PriceStats(ctx, gateway.StatsFilter{})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderPriceStats(stats)
		case "compare":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: compare <product-id>")
				continue
			}
			prices, err := a.client.ComparePrices(ctx, id)
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderComparison(id, prices)
		case "sync":
			ack, err := a.client.RefreshPrices(ctx, gateway.RefreshScope{})
			if err != nil {
				a.printError(err)
				continue
			}
			fmt.Fprintln(a.out, ack.Message)
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type help for the list.\n", cmd)
		}
	}
	return nil
}

// priceFetch builds a fetch closure over a fixed filter snapshot, so a
// background refresh never races the prompt mutating the filter.
func (a *App) priceFetch(filter gateway.PriceFilter) polling.FetchFunc[market.Price] {
	return func(ctx context.Context) ([]market.Price, error) {
		page, err := a.client.Prices(ctx, filter)
		if err != nil {
			return nil, err
		}
		return page.Prices, nil
	}
}

// reloadPrices points the resource at a new filter snapshot and redraws. A
// failed load keeps the previous rows; the banner reports the error.
func (a *App) reloadPrices(ctx context.Context, filter gateway.PriceFilter) {
	if err := a.prices.Load(ctx, a.priceFetch(filter)); err != nil {
		log.Debug().Err(err).Msg("price reload failed")
	}
	a.renderPrices()
}

// autoRefresh re-runs the stored fetch on the config interval until the view
// unmounts. Failures keep the previous rows on screen.
func (a *App) autoRefresh(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if err := a.prices.Refresh(ctx); err != nil {
				if gateway.KindOf(err) == gateway.KindUnauthorized {
					a.notify("Session ended. Press enter to continue.")
					return
				}
				log.Debug().Err(err).Msg("background price refresh failed")
			}
			a.renderPrices()
		}
	}
}
