package models

import "time"

// ParcelLockerRecord mirrors one entry of the public locker directory.
type ParcelLockerRecord struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Code           string `gorm:"size:20;not null;unique"`
	Type           int
	Description    string `gorm:"size:256"`
	City           string `gorm:"size:100"`
	Province       string `gorm:"size:100"`
	Street         string `gorm:"size:100"`
	BuildingNumber string `gorm:"size:20"`
	PostCode       string `gorm:"size:10"`
	Country        string `gorm:"size:5"`
	OpeningHours   string `gorm:"size:50"`
	Latitude       float64
	Longitude      float64
	Status         int
	SyncedAt       time.Time `gorm:"not null"`
}
