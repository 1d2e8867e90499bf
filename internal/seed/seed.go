// Package seed installs sample records for local development.
package seed

import (
	"github.com/smallbiznis/rolodex/internal/customer/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureDemoData inserts a handful of customers with addresses when the
// store is empty. Idempotent: a non-empty customers table is left alone.
func EnsureDemoData(conn *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := conn.Model(&domain.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []domain.Customer{
		{
			FirstName:   "Asha",
			LastName:    "Patil",
			PhoneNumber: "9822000001",
			Addresses: []domain.Address{
				{AddressDetails: "12 MG Road", City: "Pune", State: "Maharashtra", PinCode: "411001"},
				{AddressDetails: "4 FC Road", City: "Pune", State: "Maharashtra", PinCode: "411004"},
			},
		},
		{
			FirstName:   "Ravi",
			LastName:    "Iyer",
			PhoneNumber: "9822000002",
			Addresses: []domain.Address{
				{AddressDetails: "221 Anna Salai", City: "Chennai", State: "Tamil Nadu", PinCode: "600002"},
			},
		},
		{
			FirstName:   "Meera",
			LastName:    "Shah",
			PhoneNumber: "9822000003",
			Addresses: []domain.Address{
				{AddressDetails: "7 CG Road", City: "Ahmedabad", State: "Gujarat", PinCode: "380009"},
			},
		},
	}

	if err := conn.Create(&demo).Error; err != nil {
		return err
	}

	logger.Info("seeded demo data", zap.Int("customers", len(demo)))
	return nil
}
