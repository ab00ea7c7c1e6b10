package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"golang.org/x/crypto/ssh/terminal"
)

// runLogin is the only public view. It owns the credential prompts and the
// account recovery commands.
func (a *App) runLogin(ctx context.Context) error {
	a.renderLoginHeader()

	for a.currentView() == RouteLogin {
		if ctx.Err() != nil {
			return nil
		}
		a.prompt(RouteLogin)
		line, err := a.readLine()
		if err != nil {
			return errQuit
		}
		cmd, args := splitCommand(line)
		switch cmd {
		case "", "login":
			a.signIn(ctx)
		case "register":
			a.register(ctx)
		case "forgot":
			a.forgotPassword(ctx, args)
		case "reset":
			a.resetPassword(ctx, args)
		case "help":
			a.renderHelp(RouteLogin)
		case "quit", "exit":
			return errQuit
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type help for the list.\n", cmd)
		}
	}
	return nil
}

func (a *App) renderLoginHeader() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, CyanInverse+" Sign in to "+a.cfg.AppName+" "+ResetColor)
	fmt.Fprintln(a.out, Gray+"Press enter to sign in, or type register, forgot <email>, reset <token>, quit."+ResetColor)
}

func (a *App) signIn(ctx context.Context) {
	username := a.readField("Username or email: ")
	if username == "" {
		return
	}
	password := a.readSecret("Password: ")
	if password == "" {
		return
	}

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		if gateway.KindOf(err) == gateway.KindUnauthorized {
			fmt.Fprintln(a.out, Red+"Invalid credentials."+ResetColor)
		} else {
			a.printError(err)
		}
		return
	}

	// Signing in is the one place a token gets persisted.
	if err := a.store.Set(token.AccessToken); err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, Green+"Signed in."+ResetColor)
	a.navigate(RouteDashboard)
}

func (a *App) register(ctx context.Context) {
	req := gateway.RegisterRequest{
		Email:    a.readField("Email: "),
		Username: a.readField("Username: "),
	}
	if req.Email == "" || req.Username == "" {
		fmt.Fprintln(a.out, "Email and username are required.")
		return
	}
	req.Password = a.readSecret("Password: ")
	if req.Password == "" {
		fmt.Fprintln(a.out, "Password is required.")
		return
	}
	req.FirstName = a.readField("First name (optional): ")
	req.LastName = a.readField("Last name (optional): ")

	user, err := a.client.Register(ctx, req)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, Green+"Account %s created."+ResetColor+" Sign in to continue.\n", user.Username)
}

func (a *App) forgotPassword(ctx context.Context, args []string) {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		email = a.readField("Account email: ")
	}
	if email == "" {
		return
	}

	ack, err := a.client.RequestPasswordReset(ctx, email)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, ack.Message)
}

func (a *App) resetPassword(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: reset <token-from-email>")
		return
	}
	password := a.readSecret("New password: ")
	if password == "" {
		return
	}

	ack, err := a.client.ConfirmPasswordReset(ctx, args[0], password)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintln(a.out, ack.Message)
}

// readSecret reads a password without echo when the input is a real
// terminal, and as a plain line otherwise.
func (a *App) readSecret(label string) string {
	fmt.Fprint(a.out, label)
	if a.stdinFd >= 0 && terminal.IsTerminal(a.stdinFd) {
		secret, err := terminal.ReadPassword(a.stdinFd)
		fmt.Fprintln(a.out)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(secret))
	}
	line, err := a.readLine()
	if err != nil {
		return ""
	}
	return line
}
