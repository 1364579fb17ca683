package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CATSSNAKE/axolotl/internal/model"
)

var errorStatus = map[error]int{
	model.ErrorCredentialsRequired: http.StatusBadRequest,
	model.ErrorEmailRequired:       http.StatusBadRequest,
	model.ErrorFilterRequired:      http.StatusBadRequest,
	model.ErrorPasswordMismatch:    http.StatusUnauthorized,
	model.ErrorUserNotFound:        http.StatusNotFound,
	model.ErrorNoMatches:           http.StatusNotFound,
	model.ErrorNoUsers:             http.StatusNotFound,
	model.ErrorDuplicateEmail:      http.StatusConflict,
	model.ErrorMissingUser:         http.StatusInternalServerError,
}

// httpError maps a service failure to a distinct status code per error kind.
// Anything unrecognised is a storage or internal failure: logged in full,
// surfaced as a generic 500.
func httpError(c echo.Context, err error) error {
	for kind, status := range errorStatus {
		if errors.Is(err, kind) {
			return echo.NewHTTPError(status, echo.Map{"err": kind.Error()})
		}
	}
	c.Logger().Errorf("request failed: %+v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"err": "an error occurred"})
}
