package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitwallet/internal/auth"
	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/middleware"
	"github.com/mmynk/splitwallet/internal/storage/sqlite"
	"github.com/mmynk/splitwallet/pkg/api"
	"github.com/mmynk/splitwallet/pkg/api/apiconnect"
)

type testEnv struct {
	auth        apiconnect.AuthServiceClient
	wallets     apiconnect.WalletServiceClient
	payments    apiconnect.PaymentServiceClient
	settlements apiconnect.SettlementServiceClient
	store       *sqlite.SQLiteStore
}

type testOptions struct {
	statusCache    cache.StatusCache
	applyCompleted bool
}

// setupTestServer serves every service over httptest against a temp-file
// SQLite database, with the production interceptor chain.
func setupTestServer(t *testing.T) *testEnv {
	return setupTestServerWith(t, testOptions{})
}

func setupTestServerWith(t *testing.T, opts testOptions) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	statusCache := opts.statusCache
	if statusCache == nil {
		statusCache = cache.Noop{}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
			apiconnect.WalletServiceGetInviteProcedure,
		),
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewWalletServiceHandler(NewWalletService(store, statusCache), interceptors))
	mux.Handle(apiconnect.NewPaymentServiceHandler(NewPaymentService(store, statusCache), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, statusCache, opts.applyCompleted), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		auth:        apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		wallets:     apiconnect.NewWalletServiceClient(http.DefaultClient, server.URL),
		payments:    apiconnect.NewPaymentServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		store:       store,
	}
}

// testUser is a registered account and its session token.
type testUser struct {
	ID    string
	Name  string
	Token string
}

func (e *testEnv) register(t *testing.T, name string) testUser {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    name + "@example.com",
		Name:     name,
		Password: "password-" + name,
	}))
	require.NoError(t, err, "Register %s", name)
	return testUser{ID: resp.Msg.User.ID, Name: name, Token: resp.Msg.Token}
}

// as builds a request authenticated as u.
func as[T any](u testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+u.Token)
	return req
}

// walletWith creates a wallet owned by owner and joined by the others.
func (e *testEnv) walletWith(t *testing.T, owner testUser, others ...testUser) *api.Wallet {
	t.Helper()
	ctx := context.Background()

	created, err := e.wallets.CreateWallet(ctx, as(owner, &api.CreateWalletRequest{Name: "Trip"}))
	require.NoError(t, err, "CreateWallet")

	for _, u := range others {
		_, err := e.wallets.JoinWallet(ctx, as(u, &api.JoinWalletRequest{Code: created.Msg.Wallet.InviteCode}))
		require.NoError(t, err, "JoinWallet %s", u.Name)
	}

	got, err := e.wallets.GetWallet(ctx, as(owner, &api.GetWalletRequest{WalletID: created.Msg.Wallet.ID}))
	require.NoError(t, err, "GetWallet")
	return got.Msg.Wallet
}

// pay records an evenly split payment.
func (e *testEnv) pay(t *testing.T, payer testUser, walletID string, amount int64, participants ...testUser) *api.Payment {
	t.Helper()

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	resp, err := e.payments.CreatePayment(context.Background(), as(payer, &api.CreatePaymentRequest{
		WalletID:       walletID,
		Amount:         amount,
		Description:    "Payment",
		ParticipantIDs: ids,
	}))
	require.NoError(t, err, "CreatePayment")
	return resp.Msg.Payment
}

func assertCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, connect.CodeOf(err), "error: %v", err)
}

// assertInvalid checks err is InvalidArgument of the given kind.
func assertInvalid(t *testing.T, err error, kind error) {
	t.Helper()
	assertCode(t, err, connect.CodeInvalidArgument)

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Contains(t, connectErr.Message(), kind.Error())
}

// memoryCache is an in-process StatusCache that counts hits. beforeSet, when
// set, runs ahead of each Set.
type memoryCache struct {
	mu        sync.Mutex
	entries   map[string]cache.Entry
	versions  map[string]int64
	hits      int
	beforeSet func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]cache.Entry{}, versions: map[string]int64{}}
}

func (c *memoryCache) Get(_ context.Context, walletID string) (*cache.Entry, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	version := c.versions[walletID]
	entry, ok := c.entries[walletID]
	if !ok || entry.Version != version {
		return nil, version, nil
	}
	c.hits++
	return &entry, version, nil
}

func (c *memoryCache) Set(_ context.Context, walletID string, entry *cache.Entry) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[walletID] = *entry
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, walletID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[walletID]++
	delete(c.entries, walletID)
	return nil
}

func (c *memoryCache) has(walletID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[walletID]
	return ok
}
