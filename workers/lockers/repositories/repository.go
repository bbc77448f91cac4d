package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/jakon89/Inpost-Paczkomaty/inpost"
	"github.com/jakon89/Inpost-Paczkomaty/workers/lockers/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReplaceDirectory swaps the stored locker directory for the freshly
// fetched one in a single transaction.
func (r *Repository) ReplaceDirectory(lockers []inpost.ParcelLocker, syncedAt time.Time) error {
	records := make([]models.ParcelLockerRecord, 0, len(lockers))
	for _, locker := range lockers {
		records = append(records, models.ParcelLockerRecord{
			Code:           locker.Name,
			Type:           locker.Type,
			Description:    locker.Description,
			City:           locker.City,
			Province:       locker.Province,
			Street:         locker.Street,
			BuildingNumber: locker.BuildingNumber,
			PostCode:       locker.PostCode,
			Country:        locker.Country,
			OpeningHours:   locker.OpeningHours,
			Latitude:       locker.Latitude,
			Longitude:      locker.Longitude,
			Status:         locker.Status,
			SyncedAt:       syncedAt,
		})
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ParcelLockerRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(&records, 500).Error
	})
}

// Count returns the size of the stored directory.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ParcelLockerRecord{}).Count(&count).Error
	return count, err
}
