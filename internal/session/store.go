package session

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-pos-dashboard/internal/models"
)

// GormBannerStore keeps the flag in the preferences table.
type GormBannerStore struct {
	db *gorm.DB
}

func NewGormBannerStore(db *gorm.DB) *GormBannerStore {
	return &GormBannerStore{db: db}
}

func (s *GormBannerStore) BannerDismissed(ctx context.Context, deviceKey string) (bool, error) {
	var pref models.Preference
	err := s.db.WithContext(ctx).Where("device_key = ?", deviceKey).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return pref.BannerDismissed, nil
}

func (s *GormBannerStore) DismissBanner(ctx context.Context, deviceKey string) error {
	pref := models.Preference{DeviceKey: deviceKey}
	db := s.db.WithContext(ctx)
	if err := db.Where(models.Preference{DeviceKey: deviceKey}).FirstOrCreate(&pref).Error; err != nil {
		return err
	}
	return db.Model(&pref).Update("banner_dismissed", true).Error
}
