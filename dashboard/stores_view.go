package dashboard

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/internal/utils"
)

// runStores browses the tracked retailers with their coverage stats.
func (a *App) runStores(ctx context.Context) error {
	if !a.mountProtected(ctx) {
		return nil
	}

	a.listStores(ctx)

	for a.currentView() == RouteStores {
		if ctx.Err() != nil {
			return nil
		}
		a.prompt(RouteStores)
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
		case "list", "refresh":
			a.listStores(ctx)
		case "show":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: show <store-id>")
				continue
			}
			detail, err := a.client.Store(ctx, id, gateway.StoreDetailOptions{IncludeRecentPrices: utils.Ptr(true)})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderStoreDetail(detail)
		case "shelf":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: shelf <store-id>")
				continue
			}
			page, err := a.client.StoreProducts(ctx, id, gateway.StoreProductFilter{Limit: utils.Ptr(a.cfg.PageSize)})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderShelf(page)
		case "stats":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: stats <store-id> [days]")
				continue
			}
			stats, err := a.client.StoreStats(ctx, id, argDays(args, 1))
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderStoreStats(stats)
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type help for the list.\n", cmd)
		}
	}
	return nil
}

func (a *App) listStores(ctx context.Context) {
	page, err := a.client.Stores(ctx, gateway.StoreFilter{IncludeStats: utils.Ptr(true)})
	if err != nil {
		a.printError(err)
		return
	}
	a.renderStores(page)
}
