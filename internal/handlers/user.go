package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CATSSNAKE/axolotl/internal/auth"
	"github.com/CATSSNAKE/axolotl/internal/model"
)

type MatchingService interface {
	Signup(ctx context.Context, params *model.SignupParams) (string, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Delete(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, activityName, skillLevel, gender string) ([]model.Match, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

func Signup(matchingService MatchingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.SignupParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		message, err := matchingService.Signup(c.Request().Context(), params)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"string": message})
	}
}

func Login(matchingService MatchingService, sessions *auth.Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LoginParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		user, err := matchingService.Login(c.Request().Context(), params.Email, params.Password)
		if err != nil {
			return httpError(c, err)
		}

		token, err := sessions.Issue(user)
		if err != nil {
			return httpError(c, fmt.Errorf("issuing session token: %w", err))
		}
		c.SetCookie(&http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(sessions.TTL()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.JSON(http.StatusOK, echo.Map{"string": fmt.Sprintf("Login successful for %s", user.Email)})
	}
}

func DeleteUser(matchingService MatchingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.DeleteParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if params.Email == "" {
			return httpError(c, model.ErrorEmailRequired)
		}
		deleted, err := matchingService.Delete(c.Request().Context(), params.Email)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, deleted)
	}
}
