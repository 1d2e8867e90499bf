package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/rolodex/pkg/db/pagination"
)

type AddressInput struct {
	AddressDetails string `json:"address_details"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
}

type CreateCustomerRequest struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Addresses   []AddressInput
}

type UpdateCustomerRequest struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

type ListCustomersRequest struct {
	Search  string
	City    string
	State   string
	PinCode string
	SortBy  string
	Order   string
	Page    pagination.Pagination
}

type ListCustomersResponse struct {
	pagination.PageInfo
	Customers []CustomerSummary `json:"data"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomersRequest) (ListCustomersResponse, error)
	GetByID(ctx context.Context, id int64) (Customer, error)
	Update(ctx context.Context, id int64, req UpdateCustomerRequest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	AddAddress(ctx context.Context, customerID int64, addr AddressInput) (Address, error)
	UpdateAddress(ctx context.Context, addressID int64, addr AddressInput) (int64, error)
	DeleteAddress(ctx context.Context, addressID int64) (int64, error)
}

var (
	ErrInvalidFirstName      = errors.New("invalid_first_name")
	ErrInvalidLastName       = errors.New("invalid_last_name")
	ErrInvalidAddressDetails = errors.New("invalid_address_details")
	ErrInvalidCity           = errors.New("invalid_city")
	ErrInvalidState          = errors.New("invalid_state")
	ErrNoAddresses           = errors.New("invalid_addresses")
	ErrInvalidID             = errors.New("invalid_id")
	ErrPhoneNumberTaken      = errors.New("phone_number_taken")
	ErrNotFound              = errors.New("not_found")
)
