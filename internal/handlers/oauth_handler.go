package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/service"
)

// OAuthHandler handles the login redirect and the provider callbacks.
type OAuthHandler struct {
	OAuthService service.OAuthFlow
}

// NewOAuthHandler creates a new OAuthHandler
func NewOAuthHandler(oauthService service.OAuthFlow) *OAuthHandler {
	return &OAuthHandler{
		OAuthService: oauthService,
	}
}

// Login redirects the client to the authorization URL of the provider
// named in the `provider` query parameter.
func (h *OAuthHandler) Login(c echo.Context) error {
	provider, err := models.ParseProvider(c.QueryParam("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown provider")
	}

	authURL, err := h.OAuthService.LoginURL(c.Request().Context(), provider)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.String()).Msg("Failed to build authorization URL")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start login")
	}

	return c.Redirect(http.StatusFound, authURL)
}

// Callback completes a login attempt for the provider baked into the
// route. Every rejection (bad state, upstream failure) collapses to the
// same 401 body so the response does not reveal which check failed.
func (h *OAuthHandler) Callback(provider models.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := c.QueryParam("state")
		code := c.QueryParam("code")

		signed, err := h.OAuthService.HandleCallback(c.Request().Context(), provider, state, code)
		if err != nil {
			log.Warn().Err(err).Str("provider", provider.String()).Msg("Login attempt rejected")
			return c.JSON(http.StatusUnauthorized, models.AuthFailureResponse{
				State: state,
				Msg:   "Authentication failed",
			})
		}

		return c.JSON(http.StatusOK, models.TokenResponse{JWT: signed})
	}
}
