package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-pos-dashboard/internal/models"
)

// ErrUserNotFound is returned when no staff account matches.
var ErrUserNotFound = errors.New("user not found")

// Users is the staff account repository.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (u *Users) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := u.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// Count is used to make the first registered account an admin.
func (u *Users) Count(ctx context.Context) (int64, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
