// Package schwab provides a client for the Schwab trader account API.
// Access tokens are minted from a long-lived refresh token through the
// OAuth2 token endpoint and refreshed transparently by the transport.
package schwab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

const (
	defaultBaseURL  = "https://api.schwabapi.com"
	defaultTokenURL = "https://api.schwabapi.com/v1/oauth/token"
	defaultTimeout  = 30 * time.Second

	accountsPath = "/trader/v1/accounts"

	// FieldPositions asks the accounts endpoint to include positions.
	FieldPositions = "positions"

	// maxErrorBody bounds how much of a failed response is logged.
	maxErrorBody = 512
)

// ErrMissingCredentials is returned when the app key, app secret or refresh
// token is empty.
var ErrMissingCredentials = errors.New("schwab: app key, app secret and refresh token are required")

// Options tunes the client. Zero values select the production endpoints.
type Options struct {
	BaseURL  string
	TokenURL string
	Timeout  time.Duration
}

// Client is the account API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client authenticated with the given app credentials.
// The refresh token is exchanged for an access token on the first request.
func NewClient(appKey, appSecret, refreshToken string, opts Options, log zerolog.Logger) (*Client, error) {
	if appKey == "" || appSecret == "" || refreshToken == "" {
		return nil, ErrMissingCredentials
	}
	if opts.TokenURL == "" {
		opts.TokenURL = defaultTokenURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	conf := &oauth2.Config{
		ClientID:     appKey,
		ClientSecret: appSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  opts.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// The token exchange uses the same timeout as API calls.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: opts.Timeout})
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = opts.Timeout

	return NewClientWithHTTP(opts.BaseURL, httpClient, log), nil
}

// NewClientWithHTTP creates a client that sends requests through httpClient
// as-is. The caller is responsible for authentication.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log.With().Str("component", "schwab").Logger(),
	}
}

// AccountDetailsAll fetches every linked account. Without fields, positions
// are requested. The response is returned as decoded JSON objects with
// numbers kept as json.Number, so account numbers retain every digit.
//
// The call is made once; failures are returned to the caller.
func (c *Client) AccountDetailsAll(ctx context.Context, fields ...string) ([]domain.AccountRecord, error) {
	if len(fields) == 0 {
		fields = []string{FieldPositions}
	}

	query := url.Values{}
	query.Set("fields", strings.Join(fields, ","))
	endpoint := c.baseURL + accountsPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("fields", query.Get("fields")).Msg("Fetching account details")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("account details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Account details request rejected")
		return nil, fmt.Errorf("schwab API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	accounts, err := decodeAccounts(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int("accounts", len(accounts)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched account details")

	return accounts, nil
}

// decodeAccounts decodes a JSON array of account objects.
func decodeAccounts(r io.Reader) ([]domain.AccountRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var accounts []domain.AccountRecord
	if err := dec.Decode(&accounts); err != nil {
		return nil, fmt.Errorf("failed to decode account details: %w", err)
	}
	for i, a := range accounts {
		if a == nil {
			return nil, fmt.Errorf("failed to decode account details: element %d is null", i)
		}
	}
	return accounts, nil
}
