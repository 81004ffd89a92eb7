// Package github implements OAuth 2.0 against GitHub. GitHub's token
// exchange differs from the other providers: parameters travel as query
// values on the POST and the redirect URI is not required to match.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
)

const (
	defaultAuthEndpoint  = "https://github.com/login/oauth/authorize"
	defaultTokenEndpoint = "https://github.com/login/oauth/access_token"
	defaultUserEndpoint  = "https://api.github.com/user"

	apiVersion = "2022-11-28"
)

// Adapter is the GitHub provider adapter.
type Adapter struct {
	clientID     string
	clientSecret string
	redirectURL  string

	authEndpoint  string
	tokenEndpoint string
	userEndpoint  string

	http *http.Client
}

func New(clientID, clientSecret, redirectURL string) *Adapter {
	return &Adapter{
		clientID:      clientID,
		clientSecret:  clientSecret,
		redirectURL:   redirectURL,
		authEndpoint:  defaultAuthEndpoint,
		tokenEndpoint: defaultTokenEndpoint,
		userEndpoint:  defaultUserEndpoint,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) AuthCodeURL(state string) string {
	u, _ := url.Parse(a.authEndpoint)
	q := u.Query()
	q.Set("client_id", a.clientID)
	q.Set("redirect_uri", a.redirectURL)
	q.Set("state", state)
	q.Set("allow_signup", "true")
	q.Set("scope", "read:user,user:email")
	u.RawQuery = q.Encode()
	return u.String()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (string, error) {
	u, _ := url.Parse(a.tokenEndpoint)
	q := u.Query()
	q.Set("code", code)
	q.Set("client_id", a.clientID)
	q.Set("client_secret", a.clientSecret)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return "", &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageExchange, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageExchange, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Warn().Int("statusCode", resp.StatusCode).Str("body", string(body)).Msg("GitHub token endpoint returned an error")
		return "", &oauth.UpstreamError{
			Provider: models.ProviderGitHub,
			Stage:    oauth.StageExchange,
			Status:   resp.StatusCode,
			Err:      errors.New("token endpoint returned non-200"),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageExchange, Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if tr.Error != "" {
		return "", &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageExchange, Err: fmt.Errorf("%s: %s", tr.Error, tr.ErrorDesc)}
	}
	if tr.AccessToken == "" {
		return "", &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageExchange, Err: errors.New("no access_token in response")}
	}
	return tr.AccessToken, nil
}

type userResponse struct {
	NodeID string `json:"node_id"`
	Email  string `json:"email"`
}

func (a *Adapter) FetchIdentity(ctx context.Context, accessToken string) (*models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userEndpoint, nil)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageIdentity, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageIdentity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &oauth.UpstreamError{
			Provider: models.ProviderGitHub,
			Stage:    oauth.StageIdentity,
			Status:   resp.StatusCode,
			Err:      errors.New("user endpoint returned non-200"),
		}
	}

	var ur userResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageIdentity, Err: fmt.Errorf("failed to decode user response: %w", err)}
	}
	if ur.NodeID == "" {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGitHub, Stage: oauth.StageIdentity, Err: errors.New("no node_id in response")}
	}

	// GitHub omits the email for users who keep it private.
	return &models.Identity{
		ExternalID: ur.NodeID,
		Email:      ur.Email,
		Provider:   models.ProviderGitHub,
	}, nil
}

var _ oauth.Adapter = (*Adapter)(nil)
