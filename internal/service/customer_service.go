package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// CustomerService manages profiles and default addresses.
type CustomerService struct {
	customers repository.CustomerRepository
	addresses repository.AddressRepository
}

// ProfileUpdateInput carries profile fields plus the optional default
// address.
type ProfileUpdateInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Address   *AddressInput
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, addresses repository.AddressRepository) *CustomerService {
	return &CustomerService{customers: customers, addresses: addresses}
}

// GetProfile returns the account and its default address (nil when none).
func (s *CustomerService) GetProfile(ctx context.Context, customerID string) (*domain.Customer, *domain.Address, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	address, err := s.addresses.GetDefaultByCustomer(ctx, customerID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.MapError(err)
	}
	return customer, address, nil
}

// UpdateProfile updates profile fields and upserts the default address. The
// upsert keeps the invariant of at most one default address per customer:
// an existing default is updated in place, otherwise any stale default flags
// are cleared before the new address is inserted as default.
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID string, input ProfileUpdateInput) (*domain.Customer, *domain.Address, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	if input.FirstName != "" {
		customer.FirstName = input.FirstName
	}
	if input.LastName != "" {
		customer.LastName = input.LastName
	}
	if input.Email != "" {
		customer.Email = input.Email
	}
	if input.Mobile != "" {
		customer.Mobile = input.Mobile
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	if input.Address == nil {
		address, err := s.addresses.GetDefaultByCustomer(ctx, customerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.MapError(err)
		}
		return customer, address, nil
	}

	address, err := s.upsertDefaultAddress(ctx, customerID, *input.Address)
	if err != nil {
		return nil, nil, err
	}
	return customer, address, nil
}

// LinkLineAccount attaches a LINE user id to the account for outbound
// notifications.
func (s *CustomerService) LinkLineAccount(ctx context.Context, customerID, lineUserID string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return apperrors.MapError(err)
	}
	customer.LineUserID = &lineUserID
	if err := s.customers.Update(ctx, customer); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CustomerService) upsertDefaultAddress(ctx context.Context, customerID string, input AddressInput) (*domain.Address, error) {
	existing, err := s.addresses.GetDefaultByCustomer(ctx, customerID)
	switch {
	case err == nil:
		existing.Province = input.Province
		existing.District = input.District
		existing.SubDistrict = input.SubDistrict
		existing.PostalCode = input.PostalCode
		existing.Details = input.Details
		if err := s.addresses.Update(ctx, existing); err != nil {
			return nil, apperrors.MapError(err)
		}
		return existing, nil
	case errors.Is(err, pgx.ErrNoRows):
		if err := s.addresses.ClearDefault(ctx, customerID); err != nil {
			return nil, apperrors.MapError(err)
		}
		address := &domain.Address{
			CustomerID:  customerID,
			Province:    input.Province,
			District:    input.District,
			SubDistrict: input.SubDistrict,
			PostalCode:  input.PostalCode,
			Details:     input.Details,
			IsDefault:   true,
		}
		if err := s.addresses.Create(ctx, address); err != nil {
			return nil, apperrors.MapError(err)
		}
		return address, nil
	default:
		return nil, apperrors.MapError(err)
	}
}
