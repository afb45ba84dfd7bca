package config

import (
	"log"
	"sync"
	"time"
)

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

var (
	jwtConfig *JWTConfig
	jwtOnce   sync.Once
)

func LoadJWTConfig() *JWTConfig {
	jwtOnce.Do(func() {
		secret := getEnv("JWT_SECRET", "")
		if secret == "" {
			secret = "insecure-dev-secret"
			log.Println("Warning: JWT_SECRET not set, using development default")
		}
		jwtConfig = &JWTConfig{
			Secret:    secret,
			ExpiresIn: 24 * time.Hour,
		}
	})
	return jwtConfig
}
