package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.register(t, "Alice")
	assert.NotEmpty(t, alice.ID)
	assert.NotEmpty(t, alice.Token)

	resp, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "ALICE@example.com",
		Password: "password-Alice",
	}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.User.ID)
	assert.Equal(t, "alice@example.com", resp.Msg.User.Email)
	assert.NotEmpty(t, resp.Msg.Token)
}

func TestRegister_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.register(t, "Alice")

	tests := []struct {
		name string
		req  *api.RegisterRequest
		code connect.Code
	}{
		{"duplicate email", &api.RegisterRequest{Email: "alice@example.com", Name: "Alice 2", Password: "long enough"}, connect.CodeAlreadyExists},
		{"weak password", &api.RegisterRequest{Email: "bob@example.com", Name: "Bob", Password: "short"}, connect.CodeInvalidArgument},
		{"missing name", &api.RegisterRequest{Email: "bob@example.com", Password: "long enough"}, connect.CodeInvalidArgument},
		{"bad email", &api.RegisterRequest{Email: "bob", Name: "Bob", Password: "long enough"}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "Alice")

	_, err := env.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.register(t, "Alice")

	resp, err := env.auth.GetCurrentUser(ctx, as(alice, &emptypb.Empty{}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.Msg.User.ID)
	assert.Equal(t, "Alice", resp.Msg.User.Name)
	assert.NotZero(t, resp.Msg.User.CreatedAt)

	t.Run("no token", func(t *testing.T) {
		_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&emptypb.Empty{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := env.auth.GetCurrentUser(ctx, as(testUser{Token: "garbage"}, &emptypb.Empty{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}
