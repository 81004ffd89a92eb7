package handlers

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
	"github.com/easysocial/easysocial-server/internal/service"
)

// ProfileHandler handles the profile CRUD and search routes.
type ProfileHandler struct {
	ProfileService service.ProfileManager
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileManager) *ProfileHandler {
	return &ProfileHandler{
		ProfileService: profileService,
	}
}

// ownerID extracts the authenticated user's ID from the verified token
// the JWT middleware stored in the request context.
func ownerID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Token is missing the user ID")
	}
	return id, nil
}

// Create makes a profile for the authenticated user.
func (h *ProfileHandler) Create(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is required")
	}

	_, err = h.ProfileService.Create(c.Request().Context(), owner, req.Username)
	if err != nil {
		var conflict *service.ConflictError
		switch {
		case errors.Is(err, service.ErrUsernameTooLong):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, models.ConflictResponse{
				Status:   false,
				Conflict: conflict.Field,
				Msg:      conflict.Error(),
			})
		}
		log.Error().Err(err).Str("owner", owner).Msg("Failed to create profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create profile")
	}

	return c.JSON(http.StatusOK, models.StatusResponse{Status: true})
}

// Update applies the non-nil fields of the body to the authenticated
// user's profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	profile, err := h.ProfileService.Update(c.Request().Context(), owner, req)
	if err != nil {
		var conflict *service.ConflictError
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
		case errors.Is(err, service.ErrUsernameTooLong):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, models.ConflictResponse{
				Status:   false,
				Conflict: conflict.Field,
				Msg:      conflict.Error(),
			})
		}
		log.Error().Err(err).Str("owner", owner).Msg("Failed to update profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// Delete removes the authenticated user's profile.
func (h *ProfileHandler) Delete(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	if err := h.ProfileService.Delete(c.Request().Context(), owner); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
		}
		log.Error().Err(err).Str("owner", owner).Msg("Failed to delete profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete profile")
	}

	return c.JSON(http.StatusOK, models.StatusResponse{Status: true})
}

// Me returns the authenticated user's own profile.
func (h *ProfileHandler) Me(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	profile, err := h.ProfileService.GetByOwner(c.Request().Context(), owner)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
		}
		log.Error().Err(err).Str("owner", owner).Msg("Failed to fetch profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetByID looks a profile up by its ID. A path parameter that is not
// UUID-shaped cannot match a row, so it is answered with the same 404 as
// a miss.
func (h *ProfileHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
	}

	profile, err := h.ProfileService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
		}
		log.Error().Err(err).Str("id", id).Msg("Failed to fetch profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetByUsername looks a profile up by its exact username.
func (h *ProfileHandler) GetByUsername(c echo.Context) error {
	username := c.Param("username")

	profile, err := h.ProfileService.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, models.NotFoundResponse{Status: false, Msg: "Profile not found"})
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to fetch profile")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// Search returns up to the search limit of profiles whose username
// contains the query substring.
func (h *ProfileHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	results, err := h.ProfileService.Search(c.Request().Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Profile search failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed")
	}
	if results == nil {
		results = []*models.Profile{}
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Results:      results,
		ResultsCount: len(results),
	})
}
