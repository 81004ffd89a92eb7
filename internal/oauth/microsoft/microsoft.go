// Package microsoft implements OAuth 2.0 against the Microsoft identity
// platform (consumer accounts) with identities fetched from the Graph API.
package microsoft

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
)

const defaultGraphMeEndpoint = "https://graph.microsoft.com/v1.0/me"

// Adapter is the Microsoft provider adapter.
type Adapter struct {
	conf            *oauth2.Config
	graphMeEndpoint string
	http            *http.Client
}

func New(clientID, clientSecret, redirectURL string) *Adapter {
	return &Adapter{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email", "User.Read"},
			Endpoint:     microsoft.AzureADEndpoint("consumers"),
		},
		graphMeEndpoint: defaultGraphMeEndpoint,
		http:            &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) AuthCodeURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.http)
	token, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return "", &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageExchange, Err: err}
	}
	if token.AccessToken == "" {
		return "", &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageExchange, Err: errors.New("no access_token in response")}
	}
	return token.AccessToken, nil
}

type graphMeResponse struct {
	ID   string `json:"id"`
	Mail string `json:"mail"`
}

func (a *Adapter) FetchIdentity(ctx context.Context, accessToken string) (*models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.graphMeEndpoint, nil)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageIdentity, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageIdentity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &oauth.UpstreamError{
			Provider: models.ProviderMicrosoft,
			Stage:    oauth.StageIdentity,
			Status:   resp.StatusCode,
			Err:      errors.New("graph me endpoint returned non-200"),
		}
	}

	var me graphMeResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageIdentity, Err: fmt.Errorf("failed to decode graph response: %w", err)}
	}
	if me.ID == "" {
		return nil, &oauth.UpstreamError{Provider: models.ProviderMicrosoft, Stage: oauth.StageIdentity, Err: errors.New("no id in response")}
	}

	// Consumer accounts frequently have no mail attribute.
	return &models.Identity{
		ExternalID: me.ID,
		Email:      me.Mail,
		Provider:   models.ProviderMicrosoft,
	}, nil
}

var _ oauth.Adapter = (*Adapter)(nil)
