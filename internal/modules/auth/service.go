package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/hillcrest-academy/core/internal/models"
	"github.com/hillcrest-academy/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// failureDelay slows brute-force attempts against the login endpoint.
const failureDelay = 3 * time.Second

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login verifies credentials, records lastLogin, and issues a session token.
func (s *Service) Login(username, password, ip, ua string) (string, *models.AdminModel, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var admin models.AdminModel
	err := s.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(failureDelay)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		time.Sleep(failureDelay)
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&admin).Update("last_login", &now).Error; err != nil {
		return "", nil, err
	}
	admin.LastLogin = &now

	token, _, err := session.Issue(s.db, admin.ID, ip, ua, session.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &admin, nil
}

// Logout revokes the session bound to the presented token.
func (s *Service) Logout(adminID, sessionID string) error {
	err := session.Revoke(s.db, adminID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// CurrentAdmin loads the authenticated admin's profile.
func (s *Service) CurrentAdmin(adminID string) (*models.AdminModel, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
