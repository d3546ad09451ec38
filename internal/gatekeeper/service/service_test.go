package service_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/domain"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity/identitytest"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store/drivers/sqlite"
)

const (
	testAnonKey    = "anon-key"
	testServiceKey = "service-key"
)

var testJWTSecret = []byte("super-secret-jwt-token-with-at-least-32-characters")

type fixture struct {
	store    store.Store
	provider *identitytest.Provider
	client   *identity.Client
}

func newFixture(t *testing.T, requireConfirmation bool) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "gatekeeper.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	fake := identitytest.New(identitytest.Options{
		JWTSecret:           testJWTSecret,
		Issuer:              "http://identity.test/auth/v1",
		AnonKey:             testAnonKey,
		ServiceKey:          testServiceKey,
		RequireConfirmation: requireConfirmation,
	})

	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	return &fixture{
		store:    s,
		provider: fake,
		client:   identity.NewClient(srv.URL, testAnonKey, testServiceKey),
	}
}

func (f *fixture) register() *service.RegisterService {
	return &service.RegisterService{
		Store:    f.store,
		Provider: f.client,
		Admin:    f.client,
		Policy:   service.ApprovalManual,
	}
}

func (f *fixture) login() *service.LoginService {
	return &service.LoginService{
		Store:    f.store,
		Provider: f.client,
		Policy:   service.ApprovalManual,
	}
}

func (f *fixture) guard() *service.GuardService {
	return &service.GuardService{Store: f.store, Provider: f.client}
}

func (f *fixture) approval() *service.ApprovalService {
	return &service.ApprovalService{Store: f.store}
}

func buyerRegistration(email, username string) service.Registration {
	return service.Registration{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  "longpass1",
		Username:  username,
		Role:      "buyer",
		Agree:     true,
	}
}

func TestRegisterRejectsWithoutExternalCalls(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	t.Run("disposable email creates nothing", func(t *testing.T) {
		req := buyerRegistration("jane@mailinator.com", "janedoe")
		_, err := f.register().Register(ctx, req)
		require.ErrorIs(t, err, service.ErrDisposableEmail)
		require.Empty(t, f.provider.UserID("jane@mailinator.com"))
	})

	t.Run("reserved role creates nothing", func(t *testing.T) {
		req := buyerRegistration("jo@real.com", "jodoe")
		req.Role = "admin"
		_, err := f.register().Register(ctx, req)
		require.ErrorIs(t, err, service.ErrReservedRole)
		require.Empty(t, f.provider.UserID("jo@real.com"))
	})
}

func TestRegisterCreatesIdentityAndProfile(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	res, err := f.register().Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.NoError(t, err)
	require.NotEmpty(t, res.UserID)
	require.False(t, res.PendingConfirmation)
	require.False(t, res.Approved) // manual policy

	profile, err := f.store.Profiles().GetByID(ctx, res.UserID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", profile.FullName)
	require.Equal(t, "janedoe", profile.Username)
	require.Equal(t, domain.RoleBuyer, profile.Role)
	require.False(t, profile.Approved)
	require.False(t, profile.Blocked)

	t.Run("duplicate username conflicts before identity creation", func(t *testing.T) {
		_, err := f.register().Register(ctx, buyerRegistration("other@real.com", "janedoe"))
		require.ErrorIs(t, err, service.ErrUsernameTaken)
		require.Empty(t, f.provider.UserID("other@real.com"))
	})

	t.Run("duplicate email conflicts before identity creation", func(t *testing.T) {
		_, err := f.register().Register(ctx, buyerRegistration("jane@real.com", "janedoe2"))
		require.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestRegisterWithoutUsername(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	reg := f.register()

	// The username is optional; any number of accounts may omit it.
	first, err := reg.Register(ctx, buyerRegistration("one@real.com", ""))
	require.NoError(t, err)
	second, err := reg.Register(ctx, buyerRegistration("two@real.com", ""))
	require.NoError(t, err)
	require.NotEqual(t, first.UserID, second.UserID)

	profile, err := f.store.Profiles().GetByID(ctx, second.UserID)
	require.NoError(t, err)
	require.Empty(t, profile.Username)

	t.Run("named accounts still register alongside them", func(t *testing.T) {
		_, err := reg.Register(ctx, buyerRegistration("three@real.com", "thirduser"))
		require.NoError(t, err)
	})
}

func TestRegisterAutoApprovePolicy(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	reg := f.register()
	reg.Policy = service.ApprovalAuto

	res, err := reg.Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.NoError(t, err)
	require.True(t, res.Approved)

	// Immediate login works under auto-approval.
	login := f.login()
	login.Policy = service.ApprovalAuto

	out, err := login.Login(ctx, "jane@real.com", "longpass1")
	require.NoError(t, err)
	require.Equal(t, "/buyer.html", out.Redirect)
	require.NotEmpty(t, out.Session.AccessToken)
}

// stubAdmin hands out a fixed user id so tests can force profile-insert
// collisions after identity creation.
type stubAdmin struct {
	userID  string
	deleted []string
}

func (a *stubAdmin) CreateUser(ctx context.Context, p identity.AdminCreateParams) (string, error) {
	return a.userID, nil
}

func (a *stubAdmin) DeleteUser(ctx context.Context, userID string) error {
	a.deleted = append(a.deleted, userID)
	return nil
}

func TestRegisterRollsBackIdentityOnProfileFailure(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	// Occupy the id the stub admin will hand out.
	require.NoError(t, f.store.Profiles().Create(ctx, domain.Profile{
		ID: "fixed-id", FullName: "X", Username: "existing", Email: "x@real.com", Role: domain.RoleBuyer,
	}))

	admin := &stubAdmin{userID: "fixed-id"}
	reg := f.register()
	reg.Admin = admin

	_, err := reg.Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.Error(t, err)
	require.NotErrorIs(t, err, service.ErrPartialRegistration)
	require.Equal(t, []string{"fixed-id"}, admin.deleted)
}

// stubProvider mimics a provider whose signup succeeds with a colliding id,
// on the unprivileged path where no rollback is possible.
type stubProvider struct {
	identity.Provider
	userID string
}

func (p *stubProvider) SignUp(ctx context.Context, _ identity.SignUpParams) (identity.SignUpResult, error) {
	return identity.SignUpResult{UserID: p.userID}, nil
}

func TestRegisterSurfacesPartialFailureWithoutAdmin(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	require.NoError(t, f.store.Profiles().Create(ctx, domain.Profile{
		ID: "fixed-id", FullName: "X", Username: "existing", Email: "x@real.com", Role: domain.RoleBuyer,
	}))

	reg := f.register()
	reg.Admin = nil
	reg.Provider = &stubProvider{userID: "fixed-id"}

	_, err := reg.Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.ErrorIs(t, err, service.ErrPartialRegistration)
}

func TestLoginAuthorizationGate(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	res, err := f.register().Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.NoError(t, err)

	t.Run("pending approval terminates the session", func(t *testing.T) {
		_, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.ErrorIs(t, err, service.ErrPendingApproval)
		require.Zero(t, f.provider.ActiveSessions())
	})

	t.Run("approval opens the gate", func(t *testing.T) {
		require.NoError(t, f.approval().Approve(ctx, res.UserID))

		out, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.NoError(t, err)
		require.Equal(t, "/buyer.html", out.Redirect)
		require.Equal(t, res.UserID, out.Profile.ID)
	})

	t.Run("blocked dominates approved", func(t *testing.T) {
		require.NoError(t, f.approval().Block(ctx, res.UserID))

		_, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.ErrorIs(t, err, service.ErrAccountBlocked)
		require.Zero(t, f.provider.ActiveSessions())

		require.NoError(t, f.approval().Unblock(ctx, res.UserID))
	})
}

func TestLoginRejectsNonEmailIdentifier(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.login().Login(t.Context(), "janedoe", "longpass1")
	require.ErrorIs(t, err, service.ErrEmailIdentifier)
}

func TestLoginIdempotentRejection(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	for range 3 {
		_, err := f.login().Login(ctx, "ghost@real.com", "wrongpass1")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	}

	require.Zero(t, f.provider.ActiveSessions())
	pending, err := f.store.Profiles().ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestLoginFailsClosedWithoutProfile(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	// Identity exists at the provider but no profile was ever written.
	_, err := f.client.CreateUser(ctx, identity.AdminCreateParams{
		Email:    "orphan@real.com",
		Password: "longpass1",
	})
	require.NoError(t, err)

	_, err = f.login().Login(ctx, "orphan@real.com", "longpass1")
	require.ErrorIs(t, err, service.ErrNoProfile)
	require.Zero(t, f.provider.ActiveSessions())
}

func TestLoginRoleFallback(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	userID, err := f.client.CreateUser(ctx, identity.AdminCreateParams{
		Email:    "odd@real.com",
		Password: "longpass1",
	})
	require.NoError(t, err)

	// A role outside the known set still grants access on the default page.
	require.NoError(t, f.store.Profiles().Create(ctx, domain.Profile{
		ID: userID, FullName: "Odd One", Username: "oddone",
		Email: "odd@real.com", Role: domain.Role("astronaut"), Approved: true,
	}))

	out, err := f.login().Login(ctx, "odd@real.com", "longpass1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleBuyer, out.Profile.Role)
	require.Equal(t, "/buyer.html", out.Redirect)
}

func TestDeferredConfirmationCompletesAtFirstLogin(t *testing.T) {
	f := newFixture(t, true)
	ctx := t.Context()

	reg := f.register()
	reg.Admin = nil // self-service path, confirmation required

	res, err := reg.Register(ctx, buyerRegistration("jane@real.com", "janedoe"))
	require.NoError(t, err)
	require.True(t, res.PendingConfirmation)

	// No profile yet, only the parked signup.
	_, err = f.store.Profiles().GetByID(ctx, res.UserID)
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("login before confirmation fails", func(t *testing.T) {
		_, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.ErrorIs(t, err, service.ErrEmailNotConfirmed)
	})

	require.True(t, f.provider.ConfirmEmail("jane@real.com"))

	t.Run("first login materialises the profile", func(t *testing.T) {
		// Manual policy: profile gets created pending, login still gated.
		_, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.ErrorIs(t, err, service.ErrPendingApproval)

		profile, err := f.store.Profiles().GetByID(ctx, res.UserID)
		require.NoError(t, err)
		require.Equal(t, "janedoe", profile.Username)
		require.False(t, profile.Approved)

		_, err = f.store.PendingSignups().GetByUserID(ctx, res.UserID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("approval then login succeeds", func(t *testing.T) {
		require.NoError(t, f.approval().Approve(ctx, res.UserID))

		out, err := f.login().Login(ctx, "jane@real.com", "longpass1")
		require.NoError(t, err)
		require.Equal(t, "/buyer.html", out.Redirect)
	})
}

func TestGuard(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	reg := f.register()
	reg.Policy = service.ApprovalAuto

	verifier := buyerRegistration("vera@real.com", "veraverify")
	verifier.Role = "verifier"
	res, err := reg.Register(ctx, verifier)
	require.NoError(t, err)

	login := f.login()
	login.Policy = service.ApprovalAuto
	out, err := login.Login(ctx, "vera@real.com", "longpass1")
	require.NoError(t, err)

	token := out.Session.AccessToken

	t.Run("grants matching role", func(t *testing.T) {
		profile, err := f.guard().Check(ctx, res.UserID, token, domain.RoleVerifier)
		require.NoError(t, err)
		require.Equal(t, "veraverify", profile.Username)
	})

	t.Run("grants any role when page requires none", func(t *testing.T) {
		_, err := f.guard().Check(ctx, res.UserID, token, "")
		require.NoError(t, err)
	})

	t.Run("role mismatch denies but keeps the session", func(t *testing.T) {
		before := f.provider.ActiveSessions()

		_, err := f.guard().Check(ctx, res.UserID, token, domain.RoleAdmin)
		require.ErrorIs(t, err, service.ErrRoleMismatch)
		require.Equal(t, before, f.provider.ActiveSessions())
	})

	t.Run("blocked user is signed out", func(t *testing.T) {
		require.NoError(t, f.approval().Block(ctx, res.UserID))

		_, err := f.guard().Check(ctx, res.UserID, token, domain.RoleVerifier)
		require.ErrorIs(t, err, service.ErrAccountBlocked)
		require.Zero(t, f.provider.ActiveSessions())
	})

	t.Run("unknown identity fails closed", func(t *testing.T) {
		_, err := f.guard().Check(ctx, "no-such-user", "some-token", "")
		require.ErrorIs(t, err, service.ErrNoProfile)
	})
}

func TestApprovalListPending(t *testing.T) {
	f := newFixture(t, false)
	ctx := t.Context()

	_, err := f.register().Register(ctx, buyerRegistration("a@real.com", "aaa111"))
	require.NoError(t, err)
	_, err = f.register().Register(ctx, buyerRegistration("b@real.com", "bbb222"))
	require.NoError(t, err)

	pending, err := f.approval().ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, f.approval().Approve(ctx, pending[0].ID))

	pending, err = f.approval().ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.ErrorIs(t, f.approval().Approve(ctx, "ghost"), service.ErrProfileNotFound)
}
