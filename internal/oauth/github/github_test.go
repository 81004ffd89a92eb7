package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
)

func TestAuthCodeURL(t *testing.T) {
	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")

	u := a.AuthCodeURL("test-state-123")

	assert.Contains(t, u, defaultAuthEndpoint)
	assert.Contains(t, u, "client_id=test-client-id")
	assert.Contains(t, u, "redirect_uri=https%3A%2F%2Fsocial.example%2Foauth%2Fgithub%2F")
	assert.Contains(t, u, "state=test-state-123")
	assert.Contains(t, u, "allow_signup=true")
	assert.Contains(t, u, "scope=read%3Auser%2Cuser%3Aemail")
	assert.NotContains(t, u, "test-secret", "client secret must never appear in the redirect URL")
}

func TestExchangeCode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-code", r.URL.Query().Get("code"))
		assert.Equal(t, "test-client-id", r.URL.Query().Get("client_id"))
		assert.Equal(t, "test-secret", r.URL.Query().Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"access_token":"gh_token_abc","token_type":"bearer","scope":"read:user"}`)
	}))
	defer server.Close()

	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")
	a.tokenEndpoint = server.URL

	token, err := a.ExchangeCode(context.Background(), "test-code")
	require.NoError(t, err)
	assert.Equal(t, "gh_token_abc", token)
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`)
	}))
	defer server.Close()

	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")
	a.tokenEndpoint = server.URL

	_, err := a.ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)

	var upErr *oauth.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, models.ProviderGitHub, upErr.Provider)
	assert.Equal(t, oauth.StageExchange, upErr.Stage)
}

func TestFetchIdentity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gh_token_abc", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("X-GitHub-Api-Version"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"node_id":"MDQ6VXNlcjE=","login":"octocat","email":"octo@example.com"}`)
	}))
	defer server.Close()

	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")
	a.userEndpoint = server.URL

	identity, err := a.FetchIdentity(context.Background(), "gh_token_abc")
	require.NoError(t, err)
	assert.Equal(t, "MDQ6VXNlcjE=", identity.ExternalID)
	assert.Equal(t, "octo@example.com", identity.Email)
	assert.Equal(t, models.ProviderGitHub, identity.Provider)
}

func TestFetchIdentity_PrivateEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"node_id":"MDQ6VXNlcjI=","login":"ghost","email":null}`)
	}))
	defer server.Close()

	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")
	a.userEndpoint = server.URL

	identity, err := a.FetchIdentity(context.Background(), "gh_token_abc")
	require.NoError(t, err)
	assert.Equal(t, "MDQ6VXNlcjI=", identity.ExternalID)
	assert.Empty(t, identity.Email)
}

func TestFetchIdentity_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	a := New("test-client-id", "test-secret", "https://social.example/oauth/github/")
	a.userEndpoint = server.URL

	_, err := a.FetchIdentity(context.Background(), "expired-token")
	require.Error(t, err)

	var upErr *oauth.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, oauth.StageIdentity, upErr.Stage)
	assert.Equal(t, http.StatusUnauthorized, upErr.Status)
}
