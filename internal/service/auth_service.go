package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	customers  repository.CustomerRepository
	addresses  repository.AddressRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput describes a customer registration.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Mobile     string
	Password   string
	LineUserID *string
	Address    *AddressInput
}

// AddressInput is the address part of registration and profile updates.
type AddressInput struct {
	Province    string
	District    string
	SubDistrict string
	PostalCode  string
	Details     string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, customers repository.CustomerRepository, addresses repository.AddressRepository) *AuthService {
	return &AuthService{
		customers:  customers,
		addresses:  addresses,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a customer account with an optional default address.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Customer, string, time.Time, error) {
	if _, err := s.customers.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	customer := &domain.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		LineUserID:   input.LineUserID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", time.Time{}, err
	}

	if input.Address != nil {
		address := &domain.Address{
			CustomerID:  customer.ID,
			Province:    input.Address.Province,
			District:    input.Address.District,
			SubDistrict: input.Address.SubDistrict,
			PostalCode:  input.Address.PostalCode,
			Details:     input.Address.Details,
			IsDefault:   true,
		}
		if err := s.addresses.Create(ctx, address); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, customer.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// Login authenticates an account and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Customer, string, time.Time, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, customer.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
