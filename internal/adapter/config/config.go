package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Orders   *Orders
	Auth     *Auth
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Orders struct {
	DeliveryETAMinutes int  `env:"ORDER_ETA_MINUTES"`
	StrictTransitions  bool `env:"ORDER_STRICT_TRANSITIONS"`
}

type Auth struct {
	// TokenKey is the hex-encoded symmetric key shared with the upstream
	// auth service that issues access tokens.
	TokenKey string `env:"ORDER_TOKEN_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var orders Orders
	var auth Auth
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.IntVar(&orders.DeliveryETAMinutes, "e", 45, "Estimated delivery offset, minutes")
	flag.BoolVar(&orders.StrictTransitions, "s", false, "Enforce status transition legality")
	flag.StringVar(&auth.TokenKey, "k", "", "Access token key (hex)")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&orders)
	if err != nil {
		return nil, fmt.Errorf("error parsing orders config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Orders:   &orders,
		Auth:     &auth,
		App:      &app,
	}

	return &config, nil
}
