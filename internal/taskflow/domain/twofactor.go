package domain

import "time"

// TwoFactorSettings is persisted only once a user has confirmed a code
// against their secret. Secret holds the AES-GCM sealed TOTP secret.
type TwoFactorSettings struct {
	UserID    string
	Secret    []byte
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BackupCode struct {
	ID       string
	UserID   string
	CodeHash string
	Used     bool
	UsedAt   *time.Time
}

// TwoFactorSetup is handed to the client while enabling 2FA. Nothing in it
// is stored until the user proves they can generate a code.
type TwoFactorSetup struct {
	Secret string
	URI    string // otpauth:// URI for QR rendering
}

type TwoFactorStatus struct {
	Enabled              bool
	BackupCodesRemaining int
}
