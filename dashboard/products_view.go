package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/internal/utils"
)

// runProducts browses the product catalogue. Listings load on demand, there
// is no background refresh here.
func (a *App) runProducts(ctx context.Context) error {
	if !a.mountProtected(ctx) {
		return nil
	}

	filter := gateway.ProductFilter{Limit: utils.Ptr(a.cfg.PageSize)}
	a.listProducts(ctx, filter)

	for a.currentView() == RouteProducts {
		if ctx.Err() != nil {
			return nil
		}
		a.prompt(RouteProducts)
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
			a.listProducts(ctx, filter)
		case "next":
			filter.Skip = utils.Ptr(utils.Value(filter.Skip) + a.cfg.PageSize)
			a.listProducts(ctx, filter)
		case "prev":
			skip := utils.Value(filter.Skip) - a.cfg.PageSize
			if skip < 0 {
				skip = 0
			}
			filter.Skip = utils.Ptr(skip)
			a.listProducts(ctx, filter)
		case "category":
			if len(args) == 0 || args[0] == "-" {
				filter.Category = nil
			} else {
				filter.Category = utils.Ptr(strings.Join(args, " "))
			}
			filter.Skip = nil
			a.listProducts(ctx, filter)
		case "search":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: search <terms>")
				continue
			}
			page, err := a.client.SearchProducts(ctx, strings.Join(args, " "), gateway.SearchFilter{Limit: utils.Ptr(a.cfg.PageSize)})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderSearchResults(page)
		case "show":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: show <product-id>")
				continue
			}
			detail, err := a.client.Product(ctx, id, gateway.ProductDetailOptions{IncludePrices: utils.Ptr(true)})
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderProductDetail(detail)
		case "categories":
			list, err := a.client.Categories(ctx)
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderCategories(list)
		case "stats":
			id, ok := argID(args)
			if !ok {
				fmt.Fprintln(a.out, "Usage: stats <product-id> [days]")
				continue
			}
			stats, err := a.client.ProductStats(ctx, id, argDays(args, 1))
			if err != nil {
				a.printError(err)
				continue
			}
			a.renderProductStats(stats)
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type help for the list.\n", cmd)
		}
	}
	return nil
}

func (a *App) listProducts(ctx context.Context, filter gateway.ProductFilter) {
	page, err := a.client.Products(ctx, filter)
	if err != nil {
		a.printError(err)
		return
	}
	a.renderProducts(page)
}
