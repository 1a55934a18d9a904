package http

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/mail"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "https://app.taskflow.test"

var generous = httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}

type testServer struct {
	*httptest.Server
	store *sqlite.Store
}

// newTestServer runs the full router over a fresh SQLite database. Rate
// limits are lifted unless configure sets them.
func newTestServer(t *testing.T, configure ...func(*Router)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := service.NewTokenService([]byte("http-test-secret-0123456789abcdef!"), "taskflow")
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer([]byte("http-test-2fa-key"))
	require.NoError(t, err)

	hasher := cryptox.Hasher{Cost: bcrypt.MinCost}
	authz := &service.Authorizer{Store: st}
	auth := &service.AuthService{Store: st, Tokens: tokens, Hasher: hasher, PersistSessions: true}
	twoFactor := &service.TwoFactorService{Store: st, Issuer: "TaskFlow", Sealer: sealer}

	sessions := &session.Manager{
		Policy:    session.PolicyFor("development"),
		Users:     auth,
		Tokens:    tokens,
		TwoFactor: twoFactor,
	}

	r := NewRouter("test", st, sessions, slogx.Discard())
	r.Limits = Limits{Strict: generous, Moderate: generous, Lenient: generous, Public: generous}
	r.SessionRows = true
	r.AuthService = auth
	r.TwoFactorService = twoFactor
	r.InvitationService = &service.InvitationService{
		Store: st, Authz: authz, Auth: auth, Mailer: mail.LogMailer{}, Hasher: hasher, BaseURL: testBaseURL,
	}
	r.BusinessService = &service.BusinessService{Store: st, Authz: authz}
	r.ProjectService = &service.ProjectService{Store: st, Authz: authz}
	r.TaskService = &service.TaskService{Store: st, Authz: authz}
	r.TimeService = &service.TimeService{Store: st, Authz: authz}
	r.InvoiceService = &service.InvoiceService{Store: st, Authz: authz}
	for _, c := range configure {
		c(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: st}
}

func (s *testServer) client(t *testing.T) *sdk.Client {
	t.Helper()
	c, err := sdk.NewClient(s.URL)
	require.NoError(t, err)
	return c
}

// signup returns a signed-in client and the new user's business.
func (s *testServer) signup(t *testing.T, name, email string) (*sdk.Client, *sdk.AuthResponse) {
	t.Helper()
	c := s.client(t)
	res, err := c.Signup(context.Background(), sdk.SignupRequest{
		Name: name, Email: email, Password: "longenough1", ConfirmPassword: "longenough1",
	})
	require.NoError(t, err)
	return c, res
}

// join invites email into businessID and returns the invitee's client.
func (s *testServer) join(t *testing.T, owner *sdk.Client, businessID, name, email, role string) (*sdk.Client, *sdk.AuthResponse) {
	t.Helper()
	ctx := context.Background()
	inv, err := owner.Invite(ctx, businessID, email, role)
	require.NoError(t, err)

	c := s.client(t)
	res, err := c.AcceptInvitation(ctx, sdk.AcceptInvitationRequest{
		Token: inviteToken(t, inv), Name: name, Password: "longenough1",
	})
	require.NoError(t, err)
	return c, res
}

func inviteToken(t *testing.T, inv *sdk.Invitation) string {
	t.Helper()
	token, ok := strings.CutPrefix(inv.InviteURL, testBaseURL+"/invite/")
	require.True(t, ok, inv.InviteURL)
	return token
}

func totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

func requireAPIError(t *testing.T, err error, status int, code string) *sdk.APIError {
	t.Helper()
	var apiErr *sdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
