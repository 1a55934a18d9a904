package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/jwtx"
)

// SigningSecret returns the HS256 secret. In dev and test a missing
// AUTH_SECRET is replaced by a random one, so sessions do not survive a
// restart.
func SigningSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.AuthSecret != "" {
		return []byte(cfg.AuthSecret), nil
	}
	if !cfg.IsDevelopment() {
		return nil, ErrMissingSecret
	}

	secret := make([]byte, jwtx.MinSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate ephemeral secret: %w", err)
	}
	logger.Warn("AUTH_SECRET not set, using an ephemeral signing secret; sessions end on restart",
		"env", cfg.Env)
	return secret, nil
}

// TwoFactorSealer seals TOTP secrets with TWOFACTOR_ENCRYPTION_KEY, or with
// a key derived from the signing secret when none is configured. A key
// derived from an ephemeral signing secret is lost on restart along with
// every secret sealed under it, so that case is logged.
func TwoFactorSealer(cfg Config, signingSecret []byte, logger *slog.Logger) (*cryptox.Sealer, error) {
	material := []byte(cfg.TwoFactorEncryptionKey)
	if len(material) == 0 {
		if cfg.AuthSecret == "" {
			logger.Warn("TWOFACTOR_ENCRYPTION_KEY and AUTH_SECRET not set; two-factor secrets enabled now become unreadable after a restart",
				"env", cfg.Env)
		}
		material = append([]byte("taskflow-2fa:"), signingSecret...)
	}
	return cryptox.NewSealer(material)
}
