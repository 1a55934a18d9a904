// Package sqlstore holds the repository code shared by the SQL drivers.
// Queries are written with ? placeholders and rebound per dialect, so the
// sqlite and postgres drivers only differ in how they open the database,
// migrate it and classify constraint errors.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
)

// Dialect captures what differs between SQL backends.
type Dialect struct {
	Name string

	// Numbered switches ? placeholders to $1, $2, ...
	Numbered bool

	// TableExists is a query taking the table name and returning a count.
	TableExists string

	// IsUniqueViolation reports whether err came from a unique or primary
	// key constraint.
	IsUniqueViolation func(error) bool
}

func (d *Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type conn struct {
	q execer
	d *Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.q.ExecContext(ctx, c.d.rebind(query), args...)
	if err != nil {
		return nil, c.mapWriteErr(err)
	}
	return res, nil
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.d.rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.d.rebind(query), args...)
}

// execOne runs a write that must touch exactly one row.
func (c conn) execOne(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c conn) mapWriteErr(err error) error {
	if c.d.IsUniqueViolation != nil && c.d.IsUniqueViolation(err) {
		return errors.Join(store.ErrAlreadyExists, err)
	}
	return err
}

func (c conn) hasTable(ctx context.Context, name string) (bool, error) {
	var n int
	if err := c.queryRow(ctx, c.d.TableExists, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Store implements everything in store.Store except ApplyMigrations, which
// each driver supplies along with its embedded migrations.
type Store struct {
	db *sql.DB
	c  conn
}

func New(db *sql.DB, d *Dialect) *Store {
	return &Store{db: db, c: conn{q: db, d: d}}
}

// DB exposes the pool for drivers that need it (migrations).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) HasTable(ctx context.Context, name string) (bool, error) {
	return s.c.hasTable(ctx, name)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.c.d), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users             { return &usersRepo{c: s.c} }
func (s *Store) Sessions() store.Sessions       { return &sessionsRepo{c: s.c} }
func (s *Store) Businesses() store.Businesses   { return &businessesRepo{c: s.c} }
func (s *Store) Members() store.Members         { return &membersRepo{c: s.c} }
func (s *Store) Projects() store.Projects       { return &projectsRepo{c: s.c} }
func (s *Store) Tasks() store.Tasks             { return &tasksRepo{c: s.c} }
func (s *Store) TimeEntries() store.TimeEntries { return &timeEntriesRepo{c: s.c} }
func (s *Store) Invoices() store.Invoices       { return &invoicesRepo{c: s.c} }
func (s *Store) TwoFactor() store.TwoFactor     { return &twoFactorRepo{c: s.c} }
func (s *Store) BackupCodes() store.BackupCodes { return &backupCodesRepo{c: s.c} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{c: s.c} }

// scanner is a *sql.Row or *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

// collect drains rows through scan.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
