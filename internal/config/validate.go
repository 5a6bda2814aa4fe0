package config

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

const minJWTSecretLen = 32

// Validate checks config values that cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("config: auth.jwt_secret must be at least %d characters", minJWTSecretLen)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: auth.access_token_ttl must be positive")
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("config: auth.refresh_token_ttl must exceed access_token_ttl")
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("config: auth.password_hash_cost %d out of range", c.Auth.PasswordHashCost)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("config: upload.max_file_size must be positive")
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("config: database.max_conns %d below min_conns %d", c.Database.MaxConns, c.Database.MinConns)
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("config: rate_limit.requests_per_minute must be positive")
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}
