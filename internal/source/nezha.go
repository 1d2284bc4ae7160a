package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KunBuFenZi/PicNezha/internal/config"
	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Dashboard API routes
const (
	loginPath  = "/api/v1/login"
	serverPath = "/api/v1/server"
)

// maxResponseBytes caps how much of a dashboard response is read.
const maxResponseBytes = 16 << 20

// Nezha logs in to a Nezha dashboard and lists its servers. Every call to
// Servers logs in afresh; tokens are not cached between renders.
type Nezha struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	log      logger.Logger
	now      func() time.Time
}

// NewNezha creates a dashboard client from cfg. cfg.APIURL must not end in a
// slash; the config loader trims it.
func NewNezha(cfg config.NezhaConfig, log logger.Logger) *Nezha {
	if log == nil {
		log = logger.Noop()
	}
	return &Nezha{
		baseURL:  cfg.APIURL,
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      log,
		now:      time.Now,
	}
}

// SetHTTPClient replaces the HTTP client.
func (n *Nezha) SetHTTPClient(c *http.Client) {
	n.client = c
}

// SetClock replaces the clock used to decide which servers are online.
func (n *Nezha) SetClock(now func() time.Time) {
	n.now = now
}

// envelope is the wrapper every dashboard response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e envelope) failure() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	}
	return "API request failed"
}

// Login exchanges the configured credentials for a bearer token.
func (n *Nezha) Login(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": n.username,
		"password": n.password,
	})
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrUpstream, "Couldn't encode the login request", "")
	}

	n.log.Debug("Logging in to %s as %q", n.baseURL, n.username)

	var data struct {
		Token string `json:"token"`
	}
	if err := n.do(ctx, http.MethodPost, loginPath, "", body, &data); err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", errors.New(errors.ErrUpstream,
			"Dashboard login returned no token",
			"Check USERNAME and PASSWORD")
	}
	return data.Token, nil
}

// List returns the raw server entries, in dashboard order.
func (n *Nezha) List(ctx context.Context, token string) ([]record.Raw, error) {
	var raws []record.Raw
	if err := n.do(ctx, http.MethodGet, serverPath, token, nil, &raws); err != nil {
		return nil, err
	}
	n.log.Debug("Dashboard listed %d servers", len(raws))
	return raws, nil
}

// Servers logs in, lists and normalizes.
func (n *Nezha) Servers(ctx context.Context) ([]record.Server, error) {
	token, err := n.Login(ctx)
	if err != nil {
		return nil, err
	}
	raws, err := n.List(ctx, token)
	if err != nil {
		return nil, err
	}
	return record.NormalizeAll(raws, n.now()), nil
}

func (n *Nezha) do(ctx context.Context, method, path, token string, body []byte, out any) error {
	url := n.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't build a request for "+url,
			"Check API_URL")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't reach the dashboard at "+n.baseURL,
			"Check API_URL and that the dashboard is up")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't read the dashboard response from "+path, "")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return errors.New(errors.ErrUpstream,
				fmt.Sprintf("Dashboard answered %s for %s", resp.Status, path),
				suggestionFor(resp.StatusCode))
		}
		return errors.WrapWithCode(err, errors.ErrUpstream,
			"Dashboard sent a response that isn't JSON for "+path,
			"Check API_URL points at the dashboard, not a proxy page")
	}

	if !env.Success {
		what := "Dashboard request failed"
		if path == loginPath {
			what = "Dashboard login failed"
		}
		return errors.New(errors.ErrUpstream,
			fmt.Sprintf("%s: %s", what, env.failure()),
			suggestionFor(resp.StatusCode))
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.WrapWithCode(err, errors.ErrUpstream,
			"Couldn't decode the dashboard data for "+path,
			"The dashboard may be a version picnezha doesn't support (needs the v1 API)")
	}
	return nil
}

func suggestionFor(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Check USERNAME and PASSWORD"
	case http.StatusNotFound:
		return "Check API_URL; the dashboard needs the v1 API"
	}
	return ""
}
