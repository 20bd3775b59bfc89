package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	baseURLVar   = "BASE_URL"
	cookieKeyVar = "SESSION_COOKIE_KEY"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetSessionCookieKey() string
	GetSeedUserEmail() string
	GetSeedUserPassword() string
	GetSeedUsername() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Task Handoff")
}

// GetBaseURL returns the externally reachable base URL of the server,
// used when building absolute redirect URLs for the login handoff.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetSessionCookieKey returns the signing key for the browser session
// cookie. The default is for development only.
func (EnvVars) GetSessionCookieKey() string {
	return GetEnv(cookieKeyVar, "dev-insecure-cookie-key")
}

func (EnvVars) GetSeedUserEmail() string {
	return GetEnv("SEED_USER_EMAIL", "demo@example.com")
}

func (EnvVars) GetSeedUserPassword() string {
	return GetEnv("SEED_USER_PASSWORD", "Password123")
}

func (EnvVars) GetSeedUsername() string {
	return GetEnv("SEED_USERNAME", "demo")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
