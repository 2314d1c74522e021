package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr           string
	RemoteAPIURL   string
	RedisURL       string
	PostgresURL    string
	JWTSigningKey  string
	UploadParallel int
	RequestTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HOMEVEST_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	remote := os.Getenv("REMOTE_PROPERTY_API_URL")
	if remote == "" {
		remote = "http://localhost:9090"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:           addr,
		RemoteAPIURL:   remote,
		RedisURL:       os.Getenv("REDIS_URL"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		JWTSigningKey:  jwtSigningKey,
		UploadParallel: 4,
		RequestTimeout: 30 * time.Second,
	}
}
