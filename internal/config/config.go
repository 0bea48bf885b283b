package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "storefront.db" // sqlite file in project root
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       os.Getenv("LOG_FILE"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile)
	return cfg
}
