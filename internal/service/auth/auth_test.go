package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"prodlog/internal/storage"
	"prodlog/internal/storage/memory"
)

func newService(t *testing.T) (*Service, *memory.Storage) {
	t.Helper()
	store := memory.New()
	return New(store, WithCost(bcrypt.MinCost)), store
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, Account{Username: "manager", Password: "s3cret", Name: "Jane Manager", Role: storage.RoleManagement})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	got, err := svc.Login(ctx, "manager", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, "manager", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginUsesFirstDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, Account{Username: "op", Password: "one", Name: "First", Role: storage.RoleOperator})
	require.NoError(t, err)
	_, err = svc.Register(ctx, Account{Username: "op", Password: "two", Name: "Second", Role: storage.RoleOperator})
	require.NoError(t, err)

	got, err := svc.Login(ctx, "op", "one")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.Login(ctx, "op", "two")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_SeedDemoUsersIdempotent(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDemoUsers(ctx))
	require.NoError(t, svc.SeedDemoUsers(ctx))

	op, err := store.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "operator", op.Username)
	require.NotNil(t, op.OperatorID)
	assert.Equal(t, "12275", *op.OperatorID)

	mgr, err := store.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, storage.RoleManagement, mgr.Role)
	assert.Nil(t, mgr.OperatorID)

	_, err = store.GetUser(ctx, 3)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = svc.Login(ctx, "manager", "password")
	assert.NoError(t, err)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, u storage.NewUser) (storage.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(storage.User), args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(storage.User), args.Error(1)
}

func TestService_LoginStoreFailure(t *testing.T) {
	store := new(MockUserStore)
	store.On("GetUserByUsername", mock.Anything, "operator").Return(storage.User{}, errors.New("connection refused"))

	svc := New(store, WithCost(bcrypt.MinCost))
	_, err := svc.Login(context.Background(), "operator", "password")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	store.AssertExpectations(t)
}
