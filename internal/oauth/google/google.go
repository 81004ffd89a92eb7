// Package google implements OAuth 2.0 against Google. The token exchange
// goes through golang.org/x/oauth2 and requires the redirect URI to match
// the one used to obtain the code.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
)

const defaultUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// Adapter is the Google provider adapter.
type Adapter struct {
	conf             *oauth2.Config
	userInfoEndpoint string
	http             *http.Client
}

func New(clientID, clientSecret, redirectURL string) *Adapter {
	return &Adapter{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoEndpoint: defaultUserInfoEndpoint,
		http:             &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) AuthCodeURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.http)
	token, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return "", &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageExchange, Err: err}
	}
	if token.AccessToken == "" {
		return "", &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageExchange, Err: errors.New("no access_token in response")}
	}
	return token.AccessToken, nil
}

type userInfoResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

func (a *Adapter) FetchIdentity(ctx context.Context, accessToken string) (*models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userInfoEndpoint, nil)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageIdentity, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageIdentity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &oauth.UpstreamError{
			Provider: models.ProviderGoogle,
			Stage:    oauth.StageIdentity,
			Status:   resp.StatusCode,
			Err:      errors.New("userinfo endpoint returned non-200"),
		}
	}

	var ui userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&ui); err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageIdentity, Err: fmt.Errorf("failed to decode userinfo response: %w", err)}
	}
	if ui.Sub == "" {
		return nil, &oauth.UpstreamError{Provider: models.ProviderGoogle, Stage: oauth.StageIdentity, Err: errors.New("no sub in response")}
	}

	return &models.Identity{
		ExternalID: ui.Sub,
		Email:      ui.Email,
		Provider:   models.ProviderGoogle,
	}, nil
}

var _ oauth.Adapter = (*Adapter)(nil)
