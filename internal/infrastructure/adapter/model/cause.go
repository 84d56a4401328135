package model

import (
	"time"
)

// Cause represents the database model for causes
type Cause struct {
	ID                      uint64    `gorm:"primaryKey;autoIncrement"`
	Title                   string    `gorm:"not null;size:255"`
	Description             string    `gorm:"type:text"`
	TargetAmountMinorUnits  int64     `gorm:"not null;default:0"`
	CurrentAmountMinorUnits int64     `gorm:"not null;default:0"`
	CreatedAt               time.Time `gorm:"not null"`
	UpdatedAt               time.Time `gorm:"not null"`
}

// TableName specifies the table name for Cause
func (Cause) TableName() string {
	return "causes"
}
