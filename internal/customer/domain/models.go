package domain

import "time"

type Customer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	PhoneNumber string    `gorm:"not null;uniqueIndex" json:"phone_number"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Addresses []Address `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"addresses"`
}

type Address struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     int64     `gorm:"not null;index" json:"customer_id"`
	AddressDetails string    `gorm:"not null" json:"address_details"`
	City           string    `gorm:"not null" json:"city"`
	State          string    `gorm:"not null" json:"state"`
	PinCode        string    `gorm:"not null" json:"pin_code"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// CustomerSummary is one list row: customer fields plus the number of
// addresses it owns, never the addresses themselves.
type CustomerSummary struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	AddressCount int64  `json:"address_count"`
}
