package session

import (
	"strings"
	"time"

	"github.com/hillcrest-academy/core/internal/models"
	jwtpkg "github.com/hillcrest-academy/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

const DefaultTTL = 7 * 24 * time.Hour

// Issue creates a DB session and signs a JWT bound to that session.
func Issue(db *gorm.DB, adminID, ip, ua string, ttl time.Duration) (string, *models.AdminSession, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &models.AdminSession{
		AdminID:   adminID,
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := db.Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.Sign(adminID, s.ID, ttl)
	if err != nil {
		_ = db.Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// IsActive reports whether the session exists, is unrevoked, and unexpired.
func IsActive(db *gorm.DB, adminID, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}

	var count int64
	err := db.Model(&models.AdminSession{}).
		Where("id = ? AND admin_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, adminID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Revoke marks the session revoked; the bound JWT stops validating.
func Revoke(db *gorm.DB, adminID, sessionID string) error {
	now := time.Now()
	res := db.Model(&models.AdminSession{}).
		Where("id = ? AND admin_id = ? AND revoked_at IS NULL", sessionID, adminID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
