package taskflowsdk

import (
	"context"
	"net/http"
)

// Signup creates an account and its first business and signs in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in. Check RequiresTwoFactor on the result.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me returns the signed-in user with memberships and 2FA status.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetupTwoFactor returns a new TOTP secret. Nothing is stored until
// EnableTwoFactor confirms a code for it.
func (c *Client) SetupTwoFactor(ctx context.Context) (*TwoFactorSetupResponse, error) {
	var out TwoFactorSetupResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/2fa/setup", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnableTwoFactor turns on 2FA and returns the backup codes.
func (c *Client) EnableTwoFactor(ctx context.Context, secret, code string) ([]string, error) {
	var out BackupCodesResponse
	req := TwoFactorEnableRequest{Secret: secret, Token: code}
	if err := c.do(ctx, http.MethodPost, "/api/auth/2fa/enable", req, &out); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}

func (c *Client) DisableTwoFactor(ctx context.Context, code string, isBackupCode bool) error {
	req := TwoFactorDisableRequest{Token: code, IsBackupCode: isBackupCode}
	return c.do(ctx, http.MethodPost, "/api/auth/2fa/disable", req, nil)
}

// VerifyTwoFactor answers the login challenge. On success the server sets
// the 2fa_verified cookie in the jar.
func (c *Client) VerifyTwoFactor(ctx context.Context, code string, isBackupCode bool) error {
	req := TwoFactorVerifyRequest{Token: code, IsBackupCode: isBackupCode}
	return c.do(ctx, http.MethodPost, "/api/auth/2fa/verify", req, nil)
}

func (c *Client) RegenerateBackupCodes(ctx context.Context, code string) ([]string, error) {
	var out BackupCodesResponse
	req := BackupCodesRegenerateRequest{Token: code}
	if err := c.do(ctx, http.MethodPost, "/api/auth/2fa/backup-codes", req, &out); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}
