package model

import (
	"time"
)

// Donation represents the database model for donations
type Donation struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement"`
	DonorName          string    `gorm:"not null;size:255"`
	DonorEmail         string    `gorm:"not null;size:255;index"`
	DonorPhone         string    `gorm:"size:50"`
	Amount             string    `gorm:"not null;size:50"`
	AmountMinorUnits   int64     `gorm:"not null"`
	Currency           string    `gorm:"not null;size:10"`
	CauseID            *uint64   `gorm:"index"`
	Message            string    `gorm:"type:text"`
	Status             string    `gorm:"not null;size:50;index"`
	PaymentID          string    `gorm:"size:255"`
	OrderID            string    `gorm:"size:255;index"`
	FollowupEmailCount int       `gorm:"not null;default:0"`
	CreatedAt          time.Time `gorm:"not null;index"`
	UpdatedAt          time.Time `gorm:"not null"`

	Cause *Cause `gorm:"foreignKey:CauseID;references:ID"`
}

// TableName specifies the table name for Donation
func (Donation) TableName() string {
	return "donations"
}
