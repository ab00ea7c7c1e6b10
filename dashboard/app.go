// Package dashboard is the terminal shell of the price dashboard. It mounts
// views, keeps the protected ones behind a session check, and renders the
// backend's price, product, store and scraper data as tables.
package dashboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/internal/config"
	"github.com/jrsteele09/go-price-dashboard/market"
	"github.com/jrsteele09/go-price-dashboard/polling"
	"github.com/jrsteele09/go-price-dashboard/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// errQuit unwinds the view loop when the user asks to leave.
var errQuit = errors.New("quit")

// App wires the gateway, the session guard and the polling resource into an
// interactive terminal client. Views never talk to the backend directly;
// every call goes through the one gateway client.
type App struct {
	cfg    *config.Config
	store  credentials.Store
	client *gateway.Client
	guard  *session.Guard

	prices *polling.Resource[market.Price]

	in      *bufio.Reader
	out     io.Writer
	stdinFd int // descriptor for hidden password entry, -1 when input is piped

	viewLock sync.Mutex
	view     string

	renderLock sync.Mutex
}

type Option func(*App)

// WithOutput redirects everything the app prints.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// WithInput replaces the interactive input stream. Password entry falls back
// to plain line reads because the replacement has no terminal.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		if r != nil {
			a.in = bufio.NewReader(r)
			a.stdinFd = -1
		}
	}
}

func New(cfg *config.Config, store credentials.Store, options ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("[New] cfg is required")
	}
	if store == nil {
		return nil, errors.New("[New] store is required")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("[New] cfg.PageSize must be positive")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("[New] cfg.RefreshInterval must be positive")
	}

	a := &App{
		cfg:     cfg,
		store:   store,
		prices:  polling.New[market.Price](),
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinFd: int(os.Stdin.Fd()),
		view:    RouteDashboard,
	}
	for _, option := range options {
		option(a)
	}

	client, err := gateway.New(cfg.BaseURL, store,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithNotifier(a.notify),
		gateway.WithLoginRedirect(func() { a.navigate(RouteLogin) }),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[New] gateway.New")
	}
	a.client = client

	guard, err := session.New(store, client, func() { a.navigate(RouteLogin) })
	if err != nil {
		return nil, errors.Wrap(err, "[New] session.New")
	}
	a.guard = guard

	return a, nil
}

// Run drives the view loop until the user quits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.prices.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}

		var err error
		switch a.currentView() {
		case RouteLogin:
			err = a.runLogin(ctx)
		case RouteProducts:
			err = a.runProducts(ctx)
		case RouteStores:
			err = a.runStores(ctx)
		case RouteScraper:
			err = a.runScraper(ctx)
		default:
			err = a.runDashboard(ctx)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) navigate(view string) {
	a.viewLock.Lock()
	defer a.viewLock.Unlock()
	a.view = view
}

func (a *App) currentView() string {
	a.viewLock.Lock()
	defer a.viewLock.Unlock()
	return a.view
}

// notify surfaces a transient backend notice without disturbing app state.
func (a *App) notify(message string) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()
	fmt.Fprintln(a.out, Yellow+message+ResetColor)
}

// mountProtected verifies the session before a protected view renders. A
// failed check has already navigated to the login view.
func (a *App) mountProtected(ctx context.Context) bool {
	return a.guard.Run(ctx) == session.StateAuthenticated
}

func (a *App) prompt(view string) {
	fmt.Fprintf(a.out, "%s%s>%s ", Cyan, view, ResetColor)
}

// readLine blocks for the next input line. io.EOF means the input is done
// and the app should quit.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (a *App) readField(label string) string {
	fmt.Fprint(a.out, label)
	line, err := a.readLine()
	if err != nil {
		return ""
	}
	return line
}

// handleCommon handles the commands every protected view shares. It reports
// whether cmd was one of them.
func (a *App) handleCommon(ctx context.Context, cmd string) (bool, error) {
	switch cmd {
	case "dashboard", "prices":
		a.navigate(RouteDashboard)
	case "products":
		a.navigate(RouteProducts)
	case "stores":
		a.navigate(RouteStores)
	case "scraper":
		a.navigate(RouteScraper)
	case "me":
		user, err := a.client.Me(ctx)
		if err != nil {
			a.printError(err)
			return true, nil
		}
		a.renderUser(user, a.tokenDetails())
	case "renew":
		a.renewSession(ctx)
	case "logout":
		a.guard.Logout()
		fmt.Fprintln(a.out, "Signed out.")
	case "help":
		a.renderHelp(a.currentView())
	case "quit", "exit":
		return true, errQuit
	default:
		return false, nil
	}
	return true, nil
}

// tokenDetails decodes the stored token's claims for display. Returns nil
// when no token is held or the claims do not parse; the profile still
// renders without them.
func (a *App) tokenDetails() *credentials.TokenDetails {
	raw, err := a.store.Get()
	if err != nil {
		return nil
	}
	details, err := credentials.Inspect(raw)
	if err != nil {
		log.Debug().Err(err).Msg("stored token claims not decodable")
		return nil
	}
	return details
}

// renewSession swaps the stored token for a fresh one. Persisting the
// replacement is this caller's decision, the gateway never stores tokens.
func (a *App) renewSession(ctx context.Context) {
	token, err := a.client.RefreshToken(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	if err := a.store.Set(token.AccessToken); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, Green+"Session renewed."+ResetColor)
}

// printError renders a failed call for the user. Unauthorized failures have
// already cleared the token and queued the login view.
func (a *App) printError(err error) {
	a.renderLock.Lock()
	defer a.renderLock.Unlock()

	switch gateway.KindOf(err) {
	case gateway.KindUnauthorized:
		fmt.Fprintln(a.out, Yellow+"Your session has ended. Please sign in again."+ResetColor)
	case gateway.KindTransport:
		fmt.Fprintln(a.out, Red+"Cannot reach the price service. Check the connection and try again."+ResetColor)
	default:
		fmt.Fprintln(a.out, Red+err.Error()+ResetColor)
	}
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// argID parses the leading numeric argument of a command.
func argID(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// argDays parses an optional day-count argument at index, nil when absent or
// not a positive number.
func argDays(args []string, index int) *int {
	if len(args) <= index {
		return nil
	}
	days, err := strconv.Atoi(args[index])
	if err != nil || days <= 0 {
		return nil
	}
	return &days
}
