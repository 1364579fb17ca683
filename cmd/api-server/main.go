package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/CATSSNAKE/axolotl/internal/auth"
	"github.com/CATSSNAKE/axolotl/internal/boot"
	"github.com/CATSSNAKE/axolotl/internal/handlers"
	"github.com/CATSSNAKE/axolotl/internal/service/matching"
	"github.com/CATSSNAKE/axolotl/internal/store"
)

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	directory, err := store.Connect(context.Background(), config.Postgres.DatabaseURL)
	if err != nil {
		log.Fatalf("connecting to directory store: %+v", err)
	}
	defer directory.Close()

	matchingService := matching.New(directory)
	sessions := auth.NewSessions(config.Session.Secret, config.Session.TTL)

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("axolotl"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.Server.Origins,
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.POST("/signup", handlers.Signup(matchingService))
	server.POST("/login", handlers.Login(matchingService, sessions))
	server.GET("/main", handlers.Matches(matchingService))
	server.GET("/users", handlers.ListUsers(matchingService))
	server.DELETE("/delete", handlers.DeleteUser(matchingService))

	if config.StaticDir != "" {
		server.Static("/", config.StaticDir)
	}

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
