package schwab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountsBody = `[
  {
    "securitiesAccount": {
      "accountNumber": 123456789012345678,
      "positions": [{"instrument": {"symbol": "BAC"}, "longQuantity": 10}]
    },
    "aggregatedBalance": {"liquidationValue": 7100.25}
  },
  {"securitiesAccount": {"accountNumber": "67890", "positions": []}}
]`

func TestNewClient_RequiresCredentials(t *testing.T) {
	testCases := []struct {
		name                    string
		key, secret, refreshTok string
	}{
		{"no key", "", "secret", "refresh"},
		{"no secret", "key", "", "refresh"},
		{"no refresh token", "key", "secret", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.key, tc.secret, tc.refreshTok, Options{}, zerolog.Nop())
			assert.ErrorIs(t, err, ErrMissingCredentials)
			assert.Nil(t, client)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("key", "secret", "refresh", Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestAccountDetailsAll_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/trader/v1/accounts", r.URL.Path)
		assert.Equal(t, "positions", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(accountsBody))
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL+"/", server.Client(), zerolog.Nop())

	accounts, err := client.AccountDetailsAll(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	sa, err := accounts[0].SecuritiesAccount()
	require.NoError(t, err)
	assert.Equal(t, json.Number("123456789012345678"), sa["accountNumber"])
	assert.Len(t, accounts[0].Positions(), 1)
	assert.Empty(t, accounts[1].Positions())
}

func TestAccountDetailsAll_CustomFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "positions,orders", r.URL.Query().Get("fields"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client(), zerolog.Nop())

	accounts, err := client.AccountDetailsAll(context.Background(), "positions", "orders")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccountDetailsAll_HTTPError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL, server.Client(), zerolog.Nop())

	accounts, err := client.AccountDetailsAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, accounts)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid token")
	assert.Equal(t, 1, calls, "requests are never retried")
}

func TestAccountDetailsAll_MalformedBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"object instead of array", `{"securitiesAccount": {}}`},
		{"array of scalars", `[1, 2]`},
		{"null element", `[null]`},
		{"truncated", `[{"securitiesAccount":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClientWithHTTP(server.URL, server.Client(), zerolog.Nop())
			_, err := client.AccountDetailsAll(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestAccountDetailsAll_RefreshesToken(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "app-key", user)
		assert.Equal(t, "app-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-123", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access-abc",
			"token_type":    "Bearer",
			"expires_in":    1800,
			"refresh_token": "refresh-123",
		})
	}))
	defer tokenServer.Close()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-abc", r.Header.Get("Authorization"))
		w.Write([]byte(accountsBody))
	}))
	defer apiServer.Close()

	client, err := NewClient("app-key", "app-secret", "refresh-123", Options{
		BaseURL:  apiServer.URL,
		TokenURL: tokenServer.URL,
		Timeout:  5 * time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)

	accounts, err := client.AccountDetailsAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestAccountDetailsAll_TokenFailureIsFatal(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()

	apiCalls := 0
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
	}))
	defer apiServer.Close()

	client, err := NewClient("app-key", "app-secret", "expired", Options{
		BaseURL:  apiServer.URL,
		TokenURL: tokenServer.URL,
	}, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.AccountDetailsAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Zero(t, apiCalls)
}
