package auth

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidPassword = errors.New("invalid password")
)

type Repository interface {
	CreateUser(user *User) error
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id uint) (*User, error)

	// RecordAddress sets the baseline address only if none is recorded yet.
	// Calling it again for the same user is a no-op.
	RecordAddress(userID uint, address string) error

	// UpdateAddress unconditionally replaces the baseline address.
	UpdateAddress(userID uint, address string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := r.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByID(id uint) (*User, error) {
	var user User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) RecordAddress(userID uint, address string) error {
	return r.db.Model(&User{}).
		Where("id = ? AND last_known_address IS NULL", userID).
		Update("last_known_address", address).Error
}

func (r *repository) UpdateAddress(userID uint, address string) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("last_known_address", address).Error
}
