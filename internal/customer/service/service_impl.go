package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/rolodex/internal/customer/domain"
	"github.com/smallbiznis/rolodex/internal/validate"
	"github.com/smallbiznis/rolodex/pkg/db"
	"github.com/smallbiznis/rolodex/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("customer.service"),
		repo: p.Repo,
	}
}

// Create writes the customer row and its initial address set as a single
// transaction: a failed address insert rolls the customer back too.
func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	customer := domain.Customer{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}
	if customer.FirstName == "" {
		return domain.Customer{}, domain.ErrInvalidFirstName
	}
	if customer.LastName == "" {
		return domain.Customer{}, domain.ErrInvalidLastName
	}
	if err := validate.PhoneNumber(customer.PhoneNumber); err != nil {
		return domain.Customer{}, err
	}
	if len(req.Addresses) == 0 {
		return domain.Customer{}, domain.ErrNoAddresses
	}
	for _, addr := range req.Addresses {
		if err := checkAddress(addr); err != nil {
			return domain.Customer{}, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &customer); err != nil {
			return err
		}
		addresses := make([]domain.Address, 0, len(req.Addresses))
		for _, addr := range req.Addresses {
			addresses = append(addresses, domain.Address{
				CustomerID:     customer.ID,
				AddressDetails: strings.TrimSpace(addr.AddressDetails),
				City:           strings.TrimSpace(addr.City),
				State:          strings.TrimSpace(addr.State),
				PinCode:        strings.TrimSpace(addr.PinCode),
			})
		}
		if err := s.repo.InsertAddresses(ctx, tx, addresses); err != nil {
			return err
		}
		customer.Addresses = addresses
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrPhoneNumberTaken
		}
		return domain.Customer{}, err
	}

	s.log.Info("customer created",
		zap.Int64("customer_id", customer.ID),
		zap.Int("addresses", len(customer.Addresses)),
	)
	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomersRequest) (domain.ListCustomersResponse, error) {
	filter := domain.ListFilter{
		Search:  strings.TrimSpace(req.Search),
		City:    strings.TrimSpace(req.City),
		State:   strings.TrimSpace(req.State),
		PinCode: strings.TrimSpace(req.PinCode),
		SortBy:  strings.TrimSpace(req.SortBy),
		Desc:    strings.EqualFold(strings.TrimSpace(req.Order), "DESC"),
	}

	page := req.Page.Normalize()
	rows, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListCustomersResponse{}, err
	}
	if rows == nil {
		rows = []domain.CustomerSummary{}
	}

	return domain.ListCustomersResponse{
		PageInfo:  pagination.BuildPageInfo(total, page),
		Customers: rows,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	if customer.Addresses == nil {
		customer.Addresses = []domain.Address{}
	}
	return *customer, nil
}

// Update overwrites the three customer fields and reports the changed-row
// count; addresses are untouched. Zero rows means the id did not match.
func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateCustomerRequest) (int64, error) {
	update := domain.UpdateCustomerRequest{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}
	if update.FirstName == "" {
		return 0, domain.ErrInvalidFirstName
	}
	if update.LastName == "" {
		return 0, domain.ErrInvalidLastName
	}
	if err := validate.PhoneNumber(update.PhoneNumber); err != nil {
		return 0, err
	}

	changes, err := s.repo.Update(ctx, s.db, id, update)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return 0, domain.ErrPhoneNumberTaken
		}
		return 0, err
	}
	return changes, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if changes == 0 {
		return 0, domain.ErrNotFound
	}
	s.log.Info("customer deleted", zap.Int64("customer_id", id))
	return changes, nil
}

func (s *Service) AddAddress(ctx context.Context, customerID int64, addr domain.AddressInput) (domain.Address, error) {
	if err := checkAddress(addr); err != nil {
		return domain.Address{}, err
	}

	exists, err := s.repo.Exists(ctx, s.db, customerID)
	if err != nil {
		return domain.Address{}, err
	}
	if !exists {
		return domain.Address{}, domain.ErrNotFound
	}

	address := domain.Address{
		CustomerID:     customerID,
		AddressDetails: strings.TrimSpace(addr.AddressDetails),
		City:           strings.TrimSpace(addr.City),
		State:          strings.TrimSpace(addr.State),
		PinCode:        strings.TrimSpace(addr.PinCode),
	}
	if err := s.repo.InsertAddress(ctx, s.db, &address); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.Address{}, domain.ErrNotFound
		}
		return domain.Address{}, err
	}
	return address, nil
}

func (s *Service) UpdateAddress(ctx context.Context, addressID int64, addr domain.AddressInput) (int64, error) {
	if err := checkAddress(addr); err != nil {
		return 0, err
	}
	return s.repo.UpdateAddress(ctx, s.db, addressID, domain.AddressInput{
		AddressDetails: strings.TrimSpace(addr.AddressDetails),
		City:           strings.TrimSpace(addr.City),
		State:          strings.TrimSpace(addr.State),
		PinCode:        strings.TrimSpace(addr.PinCode),
	})
}

func (s *Service) DeleteAddress(ctx context.Context, addressID int64) (int64, error) {
	changes, err := s.repo.DeleteAddress(ctx, s.db, addressID)
	if err != nil {
		return 0, err
	}
	if changes == 0 {
		return 0, domain.ErrNotFound
	}
	return changes, nil
}

func checkAddress(addr domain.AddressInput) error {
	if strings.TrimSpace(addr.AddressDetails) == "" {
		return domain.ErrInvalidAddressDetails
	}
	if strings.TrimSpace(addr.City) == "" {
		return domain.ErrInvalidCity
	}
	if strings.TrimSpace(addr.State) == "" {
		return domain.ErrInvalidState
	}
	return validate.PinCode(strings.TrimSpace(addr.PinCode))
}
