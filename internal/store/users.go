package store

import (
	"errors"

	"gorm.io/gorm"

	"sweetshop/internal/domain"
	"sweetshop/internal/utils"
)

// UserProfile carries the caller-supplied fields of a new account.
type UserProfile struct {
	Username string
	Email    string
	FullName string
}

// CreateUser hashes the password and inserts a new user row. A username or
// email collision yields ErrDuplicateUser; the unique constraints back the
// pre-insert lookups in case of a racing registration.
func CreateUser(db *gorm.DB, profile UserProfile, password string, isAdmin bool) (*domain.User, error) {
	if existing, err := UserByUsername(db, profile.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateUser
	}
	if existing, err := UserByEmail(db, profile.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateUser
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username:       profile.Username,
		Email:          profile.Email,
		FullName:       profile.FullName,
		HashedPassword: hash,
		IsAdmin:        isAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return &user, nil
}

// UserByUsername returns the user with the given username, or nil if absent.
func UserByUsername(db *gorm.DB, username string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UserByEmail returns the user with the given email, or nil if absent.
func UserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UserByID returns the user with the given id, or nil if absent.
func UserByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
