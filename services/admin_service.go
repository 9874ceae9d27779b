package services

import (
	"errors"
	"strings"

	"guesthouse-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// Login verifies admin credentials against the stored bcrypt hash.
func (s *AdminService) Login(username, password string) (models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Admin{}, errors.New("invalid_credentials")
	}

	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, errors.New("invalid_credentials")
		}
		return models.Admin{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return models.Admin{}, errors.New("invalid_credentials")
	}
	return admin, nil
}
