package gateway

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-price-dashboard/users"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenResponse is the backend's token endpoint reply.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"` // always "bearer"
	ExpiresIn   int       `json:"expires_in"` // lifetime hint in seconds
	Expiry      time.Time `json:"-"`          // computed client-side from ExpiresIn
}

// SessionInfo is the backend's verdict on the currently held token.
type SessionInfo struct {
	Valid bool        `json:"valid"`
	User  *users.User `json:"user,omitempty"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate carries a partial update of the signed-in user's profile.
// Nil fields are left unchanged by the backend.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Login exchanges a username and password for a bearer token using the
// backend's OAuth2 password form. The token is returned, never stored:
// persisting it is the caller's authentication decision, made in exactly one
// place.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + RouteAuthLogin,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Run the grant through the Client's own transport so timeouts and test
	// doubles apply to the token call as well.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, errors.Wrap(c.fail(http.MethodPost, RouteAuthLogin, c.classifyOAuth(err)), "[Client.Login] password grant")
	}

	return &TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int(token.ExpiresIn),
		Expiry:      token.Expiry,
	}, nil
}

// classifyOAuth maps an x/oauth2 retrieval failure onto the common taxonomy
// so the password grant is classified exactly like every other call.
func (c *Client) classifyOAuth(err error) *APIError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		statusCode := 0
		if retrieveErr.Response != nil {
			statusCode = retrieveErr.Response.StatusCode
		}
		detail := detailFromBody(retrieveErr.Body)
		if detail == "" {
			detail = retrieveErr.ErrorDescription
		}
		return Classify(statusCode, detail, nil)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTransport, Err: err}
	}

	// The call reached the backend and got a 2xx, but the token payload was
	// unusable.
	return &APIError{Kind: KindMalformed, StatusCode: http.StatusOK, Err: err}
}

// LoginJSON exchanges an email and password for a bearer token using the
// backend's JSON login endpoint. Like Login, the token is returned to the
// caller and never stored here.
func (c *Client) LoginJSON(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}

	token := &TokenResponse{}
	if err := c.do(ctx, http.MethodPost, RouteAuthLoginJSON, nil, body, token); err != nil {
		return nil, errors.Wrap(err, "[Client.LoginJSON] exchange credentials")
	}
	token.Expiry = expiryFrom(token.ExpiresIn)

	return token, nil
}

// Register creates a new account and returns the stored profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	user := &users.User{}
	if err := c.do(ctx, http.MethodPost, RouteAuthRegister, nil, req, user); err != nil {
		return nil, errors.Wrap(err, "[Client.Register] create account")
	}

	return user, nil
}

// CheckSession asks the backend whether the held token still identifies a
// live session. The session guard treats any error, and any reply that is
// not valid, as a dead session.
func (c *Client) CheckSession(ctx context.Context) (*SessionInfo, error) {
	info := &SessionInfo{}
	if err := c.do(ctx, http.MethodGet, RouteAuthSession, nil, nil, info); err != nil {
		return nil, errors.Wrap(err, "[Client.CheckSession] validate session")
	}

	return info, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	user := &users.User{}
	if err := c.do(ctx, http.MethodGet, RouteAuthMe, nil, nil, user); err != nil {
		return nil, errors.Wrap(err, "[Client.Me] fetch profile")
	}

	return user, nil
}

// UpdateMe applies a partial profile update and returns the new profile.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*users.User, error) {
	user := &users.User{}
	if err := c.do(ctx, http.MethodPut, RouteAuthMe, nil, update, user); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateMe] update profile")
	}

	return user, nil
}

// RefreshToken trades the held token for a fresh one. The caller decides
// whether to store the replacement.
func (c *Client) RefreshToken(ctx context.Context) (*TokenResponse, error) {
	token := &TokenResponse{}
	if err := c.do(ctx, http.MethodPost, RouteAuthRefresh, nil, nil, token); err != nil {
		return nil, errors.Wrap(err, "[Client.RefreshToken] refresh token")
	}
	token.Expiry = expiryFrom(token.ExpiresIn)

	return token, nil
}

// Logout tells the backend the session is over. Ending the local session is
// separate and handled by the session guard, which never depends on this
// call succeeding.
func (c *Client) Logout(ctx context.Context) (*Message, error) {
	message := &Message{}
	if err := c.do(ctx, http.MethodPost, RouteAuthLogout, nil, nil, message); err != nil {
		return nil, errors.Wrap(err, "[Client.Logout] end session")
	}

	return message, nil
}

// RequestPasswordReset asks the backend to mail a reset link. The reply is
// deliberately the same whether or not the address exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*Message, error) {
	body := map[string]string{"email": email}

	message := &Message{}
	if err := c.do(ctx, http.MethodPost, RouteAuthPasswordReset, nil, body, message); err != nil {
		return nil, errors.Wrap(err, "[Client.RequestPasswordReset] request reset")
	}

	return message, nil
}

// ConfirmPasswordReset completes a password reset using the mailed token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (*Message, error) {
	body := map[string]string{"token": token, "new_password": newPassword}

	message := &Message{}
	if err := c.do(ctx, http.MethodPost, RouteAuthPasswordResetConfirm, nil, body, message); err != nil {
		return nil, errors.Wrap(err, "[Client.ConfirmPasswordReset] confirm reset")
	}

	return message, nil
}

func expiryFrom(expiresIn int) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}
