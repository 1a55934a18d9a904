package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		DatabaseDriver:       "sqlite",
		DatabaseURL:          filepath.Join(t.TempDir(), "taskflow.db"),
		AuthIssuer:           "taskflow",
		SessionPersistence:   true,
		TwoFactorIssuer:      "TaskFlow",
		InvitationTTL:        time.Hour,
		AppBaseURL:           "http://localhost:3000",
	}
}

func TestNewWiresEverything(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })
	require.True(t, application.sessionRows)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	c, err := sdk.NewClient(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	ready, err := c.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", ready.Checks.Sessions)

	res, err := c.Signup(ctx, sdk.SignupRequest{
		Name: "Ann", Email: "ann@example.com", Password: "longenough1", ConfirmPassword: "longenough1",
	})
	require.NoError(t, err)

	inv, err := c.Invite(ctx, res.Business.ID, "mel@example.com", "member")
	require.NoError(t, err)
	require.Contains(t, inv.InviteURL, "http://localhost:3000/invite/")
}

func TestNewWithoutSessionPersistence(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionPersistence = false

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })
	require.False(t, application.sessionRows)
	require.False(t, application.authService.PersistSessions)
}

func TestNewRejectsMissingSecretInProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrMissingSecret)
}
