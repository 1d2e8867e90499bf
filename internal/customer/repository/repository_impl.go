package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/rolodex/internal/customer/domain"
	"github.com/smallbiznis/rolodex/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(customer).Error
}

func (r *repo) InsertAddresses(ctx context.Context, db *gorm.DB, addresses []domain.Address) error {
	if len(addresses) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&addresses).Error
}

// Sort keys permitted on the list query. Anything else falls back to the
// store's natural order.
var sortColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]domain.CustomerSummary, int64, error) {
	var total int64
	err := applyListFilter(r.listBase(ctx, db), filter).
		Select("COUNT(DISTINCT c.id)").
		Scan(&total).Error
	if err != nil {
		return nil, 0, err
	}

	stmt := applyListFilter(r.listBase(ctx, db), filter).
		Select(`DISTINCT c.id, c.first_name, c.last_name, c.phone_number,
			(SELECT COUNT(*) FROM addresses a2 WHERE a2.customer_id = c.id) AS address_count`)

	if column, ok := sortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if filter.Desc {
			direction = "DESC"
		}
		stmt = stmt.Order("c." + column + " " + direction)
	}

	var rows []domain.CustomerSummary
	if err := page.Apply(stmt).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repo) listBase(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("customers AS c").
		Joins("LEFT JOIN addresses a ON a.customer_id = c.id")
}

func applyListFilter(stmt *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.Search != "" {
		term := contains(filter.Search)
		stmt = stmt.Where(
			"LOWER(c.first_name) LIKE ? OR LOWER(c.last_name) LIKE ? OR LOWER(c.phone_number) LIKE ?",
			term, term, term,
		)
	}
	if filter.City != "" {
		stmt = stmt.Where("LOWER(a.city) LIKE ?", contains(filter.City))
	}
	if filter.State != "" {
		stmt = stmt.Where("LOWER(a.state) LIKE ?", contains(filter.State))
	}
	if filter.PinCode != "" {
		stmt = stmt.Where("a.pin_code LIKE ?", "%"+filter.PinCode+"%")
	}
	return stmt
}

func contains(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).
		Preload("Addresses", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("addresses.id ASC")
		}).
		First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, req domain.UpdateCustomerRequest) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name":   req.FirstName,
			"last_name":    req.LastName,
			"phone_number": req.PhoneNumber,
		})
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Customer{}, id)
	return res.RowsAffected, res.Error
}

func (r *repo) InsertAddress(ctx context.Context, db *gorm.DB, address *domain.Address) error {
	return db.WithContext(ctx).Create(address).Error
}

func (r *repo) UpdateAddress(ctx context.Context, db *gorm.DB, addressID int64, addr domain.AddressInput) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Address{}).
		Where("id = ?", addressID).
		Updates(map[string]any{
			"address_details": addr.AddressDetails,
			"city":            addr.City,
			"state":           addr.State,
			"pin_code":        addr.PinCode,
		})
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteAddress(ctx context.Context, db *gorm.DB, addressID int64) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Address{}, addressID)
	return res.RowsAffected, res.Error
}
