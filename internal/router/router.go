package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/easysocial/easysocial-server/internal/handlers"
	"github.com/easysocial/easysocial-server/internal/models"
)

// SetupOAuthRoutes registers the public login and callback routes.
func SetupOAuthRoutes(e *echo.Echo, oauthHandler *handlers.OAuthHandler) {
	oauth := e.Group("/oauth")

	oauth.GET("/", oauthHandler.Login) // Redirects to the provider named in ?provider=

	oauth.GET("/github/", oauthHandler.Callback(models.ProviderGitHub))
	oauth.GET("/google/", oauthHandler.Callback(models.ProviderGoogle))
	oauth.GET("/microsoft/", oauthHandler.Callback(models.ProviderMicrosoft))
}

// SetupProfileRoutes registers the profile routes. Mutations and the
// /me lookup require a valid bearer token; lookups by id, username, and
// search are public.
func SetupProfileRoutes(e *echo.Echo, profileHandler *handlers.ProfileHandler, jwtSecret string) {
	profiles := e.Group("/profiles")

	profiles.GET("/id/:id/", profileHandler.GetByID)
	profiles.GET("/username/:username/", profileHandler.GetByUsername)
	profiles.GET("/search/", profileHandler.Search)

	authed := profiles.Group("", echojwt.JWT([]byte(jwtSecret)))
	authed.POST("/", profileHandler.Create)
	authed.PUT("/", profileHandler.Update)
	authed.DELETE("/", profileHandler.Delete)
	authed.GET("/me/", profileHandler.Me)
}
