package models

import "time"

// LockerSnapshot is one locker's state captured by a single poll.
type LockerSnapshot struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	LockerID     string    `gorm:"size:50;not null;index"`
	ReadyCount   int       `gorm:"not null"`
	EnRouteCount int       `gorm:"not null"`
	ParcelsJSON  string    `gorm:"type:text"`
	CollectedAt  time.Time `gorm:"not null;index"`
}

// CarbonFootprintDay keeps the accumulated CO2 figures for one calendar
// date; re-polls upsert it.
type CarbonFootprintDay struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Date        string  `gorm:"size:10;not null;unique"`
	CO2Kg       float64 `gorm:"not null"`
	ParcelCount int     `gorm:"not null"`
}

// AuthTokenRecord is the persisted OAuth token pair, one row per account.
type AuthTokenRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	PhoneNumber  string `gorm:"size:20;not null;unique"`
	AccessToken  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"type:text;not null"`
	TokenType    string `gorm:"size:20"`
	ExpiresIn    int
	Scope        string `gorm:"size:50"`
	UpdatedAt    time.Time
}
