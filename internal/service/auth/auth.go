package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"prodlog/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserStore interface {
	CreateUser(ctx context.Context, u storage.NewUser) (storage.User, error)
	GetUserByUsername(ctx context.Context, username string) (storage.User, error)
}

type Account struct {
	Username   string
	Password   string
	Name       string
	Role       string
	OperatorID *string
}

type Service struct {
	store UserStore
	cost  int
}

type Option func(*Service)

// WithCost задает стоимость bcrypt, в тестах удобно bcrypt.MinCost
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func New(store UserStore, opts ...Option) *Service {
	s := &Service{store: store, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register хеширует пароль и создает пользователя
func (s *Service) Register(ctx context.Context, acc Account) (storage.User, error) {
	const op = "service.auth.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), s.cost)
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	user, err := s.store.CreateUser(ctx, storage.NewUser{
		Username:     acc.Username,
		PasswordHash: string(hash),
		Name:         acc.Name,
		Role:         acc.Role,
		OperatorID:   acc.OperatorID,
	})
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Login проверяет пароль первого пользователя с таким логином
func (s *Service) Login(ctx context.Context, username, password string) (storage.User, error) {
	const op = "service.auth.Login"

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return storage.User{}, ErrInvalidCredentials
		}
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return storage.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// SeedDemoUsers создает демо оператора и менеджера, если их еще нет
func (s *Service) SeedDemoUsers(ctx context.Context) error {
	const op = "service.auth.SeedDemoUsers"

	operatorID := "12275"
	demo := []Account{
		{Username: "operator", Password: "password", Name: "John Operator", Role: storage.RoleOperator, OperatorID: &operatorID},
		{Username: "manager", Password: "password", Name: "Jane Manager", Role: storage.RoleManagement},
	}

	for _, acc := range demo {
		_, err := s.store.GetUserByUsername(ctx, acc.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: lookup %s: %w", op, acc.Username, err)
		}

		if _, err := s.Register(ctx, acc); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
