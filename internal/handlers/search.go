package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Matches serves the main search: all three query filters are required and
// matched exactly as stored.
func Matches(matchingService MatchingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		matches, err := matchingService.Search(c.Request().Context(),
			c.QueryParam("activityName"), c.QueryParam("skillLevel"), c.QueryParam("gender"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, matches)
	}
}

func ListUsers(matchingService MatchingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := matchingService.ListUsers(c.Request().Context())
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}
