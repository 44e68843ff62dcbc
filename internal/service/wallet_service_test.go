package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/internal/models"
	"github.com/mmynk/splitwallet/pkg/api"
)

func TestCreateWallet(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "Alice")

	resp, err := env.wallets.CreateWallet(context.Background(), as(alice, &api.CreateWalletRequest{
		Name:        "  Kyoto Trip ",
		Description: "Autumn leaves",
	}))
	require.NoError(t, err)

	w := resp.Msg.Wallet
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "Kyoto Trip", w.Name)
	assert.Equal(t, "Autumn leaves", w.Description)
	assert.NotEmpty(t, w.InviteCode)
	assert.True(t, w.IsActive)
	require.Len(t, w.Members, 1)
	assert.Equal(t, alice.ID, w.Members[0].UserID)
	assert.Equal(t, models.RoleOwner, w.Members[0].Role)
}

func TestCreateWallet_Validation(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "Alice")

	_, err := env.wallets.CreateWallet(context.Background(), as(alice, &api.CreateWalletRequest{Name: "   "}))
	assertInvalid(t, err, ErrMissingField)

	_, err = env.wallets.CreateWallet(context.Background(), connect.NewRequest(&api.CreateWalletRequest{Name: "Trip"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestListWallets(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")

	shared := env.walletWith(t, alice, bob)
	env.walletWith(t, bob)
	env.pay(t, alice, shared.ID, 100, alice, bob)

	resp, err := env.wallets.ListWallets(ctx, as(alice, &emptypb.Empty{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Wallets, 1)
	assert.Equal(t, shared.ID, resp.Msg.Wallets[0].ID)
	assert.Equal(t, 1, resp.Msg.Wallets[0].PaymentCount)
	assert.Len(t, resp.Msg.Wallets[0].Members, 2)

	resp, err = env.wallets.ListWallets(ctx, as(bob, &emptypb.Empty{}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Wallets, 2)
}

func TestGetWallet(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")
	mallory := env.register(t, "Mallory")

	w := env.walletWith(t, alice, bob)
	first := env.pay(t, alice, w.ID, 100, alice, bob)
	second := env.pay(t, bob, w.ID, 50, alice, bob)

	resp, err := env.wallets.GetWallet(ctx, as(bob, &api.GetWalletRequest{WalletID: w.ID}))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Msg.Wallet.PaymentCount)
	require.Len(t, resp.Msg.Payments, 2)
	ids := []string{resp.Msg.Payments[0].ID, resp.Msg.Payments[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	_, err = env.wallets.GetWallet(ctx, as(mallory, &api.GetWalletRequest{WalletID: w.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.wallets.GetWallet(ctx, as(alice, &api.GetWalletRequest{WalletID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateWallet(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")
	w := env.walletWith(t, alice, bob)

	resp, err := env.wallets.UpdateWallet(ctx, as(alice, &api.UpdateWalletRequest{
		WalletID:    w.ID,
		Name:        " Osaka Trip ",
		Description: "Renamed",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Osaka Trip", resp.Msg.Wallet.Name)
	assert.Equal(t, "Renamed", resp.Msg.Wallet.Description)

	_, err = env.wallets.UpdateWallet(ctx, as(bob, &api.UpdateWalletRequest{WalletID: w.ID, Name: "Mine now"}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.wallets.UpdateWallet(ctx, as(alice, &api.UpdateWalletRequest{WalletID: w.ID, Name: " "}))
	assertInvalid(t, err, ErrMissingField)
}

func TestDeleteWallet(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")

	t.Run("refused while payments exist", func(t *testing.T) {
		w := env.walletWith(t, alice, bob)
		env.pay(t, alice, w.ID, 100, alice, bob)

		_, err := env.wallets.DeleteWallet(ctx, as(alice, &api.DeleteWalletRequest{WalletID: w.ID}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("owner only", func(t *testing.T) {
		w := env.walletWith(t, alice, bob)

		_, err := env.wallets.DeleteWallet(ctx, as(bob, &api.DeleteWalletRequest{WalletID: w.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("empty wallet", func(t *testing.T) {
		w := env.walletWith(t, alice, bob)

		_, err := env.wallets.DeleteWallet(ctx, as(alice, &api.DeleteWalletRequest{WalletID: w.ID}))
		require.NoError(t, err)

		_, err = env.wallets.GetWallet(ctx, as(alice, &api.GetWalletRequest{WalletID: w.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestInviteAndJoin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")

	created, err := env.wallets.CreateWallet(ctx, as(alice, &api.CreateWalletRequest{Name: "Flat", Description: "Rent and bills"}))
	require.NoError(t, err)
	code := created.Msg.Wallet.InviteCode

	preview, err := env.wallets.GetInvite(ctx, connect.NewRequest(&api.GetInviteRequest{Code: code}))
	require.NoError(t, err, "invite preview must not require a login")
	assert.Equal(t, created.Msg.Wallet.ID, preview.Msg.WalletID)
	assert.Equal(t, "Flat", preview.Msg.Name)
	assert.Equal(t, []string{"Alice"}, preview.Msg.MemberNames)

	joined, err := env.wallets.JoinWallet(ctx, as(bob, &api.JoinWalletRequest{Code: code}))
	require.NoError(t, err)
	require.Len(t, joined.Msg.Wallet.Members, 2)
	var bobRole string
	for _, m := range joined.Msg.Wallet.Members {
		if m.UserID == bob.ID {
			bobRole = m.Role
		}
	}
	assert.Equal(t, models.RoleMember, bobRole)

	_, err = env.wallets.JoinWallet(ctx, as(bob, &api.JoinWalletRequest{Code: code}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = env.wallets.GetInvite(ctx, connect.NewRequest(&api.GetInviteRequest{Code: "nope"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.wallets.JoinWallet(ctx, connect.NewRequest(&api.JoinWalletRequest{Code: code}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
