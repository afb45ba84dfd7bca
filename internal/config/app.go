package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name string
	Env  string
	Port string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "Interview Navigator"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "5000"
		}
		appConfig = &AppConfig{
			Name: name,
			Env:  env,
			Port: ":" + port,
		}
	})
	return appConfig
}
