// Package authclient implements the storefront's authentication core: a
// client for the marketplace auth endpoint, the login/registration form
// controller, and the session store that persists identity across restarts.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	UserTypeClient     = "client"
	UserTypeFreelancer = "freelancer"
)

// User identifies the authenticated party as the server reports it.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ProfileID *int   `json:"profileId"`
}

// Credentials pair a user with the session token issued for it. The two are
// always handed around together.
type Credentials struct {
	User         User
	SessionToken string
}

// RegisterInput carries the registration fields. Title is only sent for
// freelancer accounts and only when non-empty.
type RegisterInput struct {
	Email     string
	Password  string
	UserType  string
	FirstName string
	LastName  string
	Title     string
}

// API is the gateway surface the rest of the core depends on.
type API interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, input RegisterInput) (*Credentials, error)
	Logout(ctx context.Context, token string) error
	VerifySession(ctx context.Context, token string) (*User, error)
}

const defaultRequestTimeout = 15 * time.Second

// Gateway is a thin client over the single auth endpoint. It is pure
// transport: no storage access, no password policy.
type Gateway struct {
	endpoint string
	httpc    *http.Client
	log      zerolog.Logger
}

func NewGateway(endpoint string, log zerolog.Logger) *Gateway {
	return &Gateway{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: defaultRequestTimeout},
		log:      log,
	}
}

// authRequest is the POST envelope. Empty fields stay off the wire; in
// particular title must be absent, not "", when it does not apply.
type authRequest struct {
	Action    string `json:"action"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	UserType  string `json:"userType,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Title     string `json:"title,omitempty"`
}

type authResponse struct {
	SessionToken string `json:"sessionToken"`
	User         *User  `json:"user"`
	Error        string `json:"error"`
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*Credentials, error) {
	resp, err := g.post(ctx, authRequest{Action: "login", Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}
	return credentialsOf(resp)
}

func (g *Gateway) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	req := authRequest{
		Action:    "register",
		Email:     input.Email,
		Password:  input.Password,
		UserType:  input.UserType,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if input.UserType == UserTypeFreelancer {
		req.Title = input.Title
	}

	resp, err := g.post(ctx, req, "")
	if err != nil {
		return nil, err
	}
	return credentialsOf(resp)
}

// Logout tells the server to invalidate the token. Callers treat failures
// as best-effort; local state clearing never waits on this.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	_, err := g.post(ctx, authRequest{Action: "logout"}, token)
	return err
}

// VerifySession checks a persisted token. Validation only; a GET with the
// token as a header, no body.
func (g *Gateway) VerifySession(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, connectionError()
	}
	req.Header.Set("X-Session-Token", token)

	resp, err := g.send(req)
	if err != nil {
		if KindOf(err) == KindServer {
			return nil, &AuthError{Kind: KindSessionInvalid, Message: messageOf(err)}
		}
		return nil, err
	}
	if resp.User == nil {
		return nil, connectionError()
	}
	return resp.User, nil
}

func (g *Gateway) post(ctx context.Context, body authRequest, token string) (*authResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, connectionError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, connectionError()
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	return g.send(req)
}

// send executes the request and normalises the three outcome classes:
// 2xx with a body, non-2xx with an {"error"} body, and everything else.
func (g *Gateway) send(req *http.Request) (*authResponse, error) {
	httpResp, err := g.httpc.Do(req)
	if err != nil {
		g.log.Debug().Err(err).Str("action", "request").Msg("auth request failed")
		return nil, connectionError()
	}
	defer func() { _ = httpResp.Body.Close() }()

	var resp authResponse
	decodeErr := json.NewDecoder(httpResp.Body).Decode(&resp)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if decodeErr != nil || resp.Error == "" {
			return nil, connectionError()
		}
		return nil, serverError(resp.Error)
	}
	if decodeErr != nil {
		return nil, connectionError()
	}
	return &resp, nil
}

func credentialsOf(resp *authResponse) (*Credentials, error) {
	if resp.User == nil || resp.SessionToken == "" {
		return nil, connectionError()
	}
	return &Credentials{User: *resp.User, SessionToken: resp.SessionToken}, nil
}
