package domain

import (
	"context"

	"github.com/smallbiznis/rolodex/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter is the predicate applied both to the page query and to the
// row total used for page-count computation.
type ListFilter struct {
	Search  string
	City    string
	State   string
	PinCode string
	SortBy  string
	Desc    bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	InsertAddresses(ctx context.Context, db *gorm.DB, addresses []Address) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]CustomerSummary, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Customer, error)
	Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req UpdateCustomerRequest) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)

	InsertAddress(ctx context.Context, db *gorm.DB, address *Address) error
	UpdateAddress(ctx context.Context, db *gorm.DB, addressID int64, addr AddressInput) (int64, error)
	DeleteAddress(ctx context.Context, db *gorm.DB, addressID int64) (int64, error)
}
