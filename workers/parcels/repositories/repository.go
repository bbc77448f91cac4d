package repositories

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakon89/Inpost-Paczkomaty/inpost"
	"github.com/jakon89/Inpost-Paczkomaty/workers/parcels/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveSummarySnapshot stores one row per locker seen in the summary.
func (r *Repository) SaveSummarySnapshot(summary *inpost.ParcelsSummary, collectedAt time.Time) error {
	rows, err := snapshotRows(summary, collectedAt)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

// UpsertCarbonDay writes a daily carbon figure, replacing the values for
// a date that was already stored.
func (r *Repository) UpsertCarbonDay(day inpost.DailyCarbonFootprint) error {
	record := models.CarbonFootprintDay{
		Date:        day.Date,
		CO2Kg:       day.Value,
		ParcelCount: day.ParcelCount,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"co2_kg", "parcel_count"}),
	}).Create(&record).Error
}

// SaveTokens persists a refreshed token pair for the account.
func (r *Repository) SaveTokens(phoneNumber string, tokens inpost.AuthTokens) error {
	record := models.AuthTokenRecord{
		PhoneNumber:  phoneNumber,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		ExpiresIn:    tokens.ExpiresIn,
		Scope:        tokens.Scope,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_type", "expires_in", "scope", "updated_at",
		}),
	}).Create(&record).Error
}

// LoadTokens returns the stored token pair for the account, or nil when
// none was persisted yet.
func (r *Repository) LoadTokens(phoneNumber string) (*models.AuthTokenRecord, error) {
	var record models.AuthTokenRecord
	err := r.db.Where("phone_number = ?", phoneNumber).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// snapshotRows flattens the summary into per-locker rows. A locker with
// both ready and en-route parcels yields a single row carrying both
// counts and the union of its line items.
func snapshotRows(summary *inpost.ParcelsSummary, collectedAt time.Time) ([]models.LockerSnapshot, error) {
	ids := make(map[string]bool)
	for id := range summary.ReadyForPickup {
		ids[id] = true
	}
	for id := range summary.EnRoute {
		ids[id] = true
	}

	ordered := make([]string, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	rows := make([]models.LockerSnapshot, 0, len(ordered))
	for _, id := range ordered {
		row := models.LockerSnapshot{
			LockerID:    id,
			CollectedAt: collectedAt,
		}
		var items []inpost.ParcelItem
		if locker, ok := summary.ReadyForPickup[id]; ok {
			row.ReadyCount = locker.Count
			items = append(items, locker.Parcels...)
		}
		if locker, ok := summary.EnRoute[id]; ok {
			row.EnRouteCount = locker.Count
			items = append(items, locker.Parcels...)
		}
		data, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		row.ParcelsJSON = string(data)
		rows = append(rows, row)
	}
	return rows, nil
}
