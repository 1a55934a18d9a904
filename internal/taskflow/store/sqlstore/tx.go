package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
)

type txStore struct {
	tx *sql.Tx
	c  conn
}

func newTx(tx *sql.Tx, d *Dialect) *txStore {
	return &txStore{tx: tx, c: conn{q: tx, d: d}}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the pool stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) HasTable(ctx context.Context, name string) (bool, error) {
	return t.c.hasTable(ctx, name)
}

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users             { return &usersRepo{c: t.c} }
func (t *txStore) Sessions() store.Sessions       { return &sessionsRepo{c: t.c} }
func (t *txStore) Businesses() store.Businesses   { return &businessesRepo{c: t.c} }
func (t *txStore) Members() store.Members         { return &membersRepo{c: t.c} }
func (t *txStore) Projects() store.Projects       { return &projectsRepo{c: t.c} }
func (t *txStore) Tasks() store.Tasks             { return &tasksRepo{c: t.c} }
func (t *txStore) TimeEntries() store.TimeEntries { return &timeEntriesRepo{c: t.c} }
func (t *txStore) Invoices() store.Invoices       { return &invoicesRepo{c: t.c} }
func (t *txStore) TwoFactor() store.TwoFactor     { return &twoFactorRepo{c: t.c} }
func (t *txStore) BackupCodes() store.BackupCodes { return &backupCodesRepo{c: t.c} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{c: t.c} }
