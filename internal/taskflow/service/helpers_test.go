package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/mail"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	testSecret = []byte("test-signing-secret-0123456789abcdef")
	fastHasher = cryptox.Hasher{Cost: bcrypt.MinCost}
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

// env wires every service over one sqlite store.
type env struct {
	store       *sqlite.Store
	tokens      *TokenService
	auth        *AuthService
	authz       *Authorizer
	twoFactor   *TwoFactorService
	invitations *InvitationService
	businesses  *BusinessService
	projects    *ProjectService
	tasks       *TaskService
	time        *TimeService
	invoices    *InvoiceService
	mailer      *recordingMailer
	clock       *clock
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := newTestStore(t)

	tokens, err := NewTokenService(testSecret, "taskflow")
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer([]byte("test-2fa-encryption-key"))
	require.NoError(t, err)

	clk := &clock{now: time.Now().UTC()}
	authz := &Authorizer{Store: st}
	auth := &AuthService{Store: st, Tokens: tokens, Hasher: fastHasher, PersistSessions: true}
	mailer := &recordingMailer{}

	return &env{
		store:     st,
		tokens:    tokens,
		auth:      auth,
		authz:     authz,
		twoFactor: &TwoFactorService{Store: st, Issuer: "TaskFlow", Sealer: sealer, Now: clk.Now},
		invitations: &InvitationService{
			Store: st, Authz: authz, Auth: auth, Mailer: mailer, Hasher: fastHasher,
			BaseURL: "https://app.taskflow.test/", Now: clk.Now,
		},
		businesses: &BusinessService{Store: st, Authz: authz},
		projects:   &ProjectService{Store: st, Authz: authz},
		tasks:      &TaskService{Store: st, Authz: authz},
		time:       &TimeService{Store: st, Authz: authz},
		invoices:   &InvoiceService{Store: st, Authz: authz},
		mailer:     mailer,
		clock:      clk,
	}
}

// signup creates an account with its own business.
func (e *env) signup(t *testing.T, name, email string) (Session, domain.Business) {
	t.Helper()
	sess, b, err := e.auth.Signup(context.Background(), SignupInput{
		Name: name, Email: email, Password: "longenough1", Plan: domain.PlanFree,
	})
	require.NoError(t, err)
	return sess, b
}

// join invites email into b as role and accepts on their behalf.
func (e *env) join(t *testing.T, inviter domain.User, b domain.Business, name, email, role string) domain.User {
	t.Helper()
	ctx := context.Background()
	inv, err := e.invitations.Invite(ctx, inviter.ID, b.ID, email, role)
	require.NoError(t, err)
	sess, err := e.invitations.Accept(ctx, AcceptInput{Token: inv.Token, Name: name, Password: "longenough1"})
	require.NoError(t, err)
	return sess.User
}
