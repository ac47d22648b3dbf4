package models

import "time"

// AdminModel represents a dashboard administrator account.
type AdminModel struct {
	Base
	Username  string     `json:"username"  gorm:"uniqueIndex;not null"`
	Email     string     `json:"email"     gorm:"uniqueIndex;not null"`
	Password  string     `json:"-"         gorm:"not null"`
	Role      string     `json:"role"      gorm:"default:'editor'"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (AdminModel) TableName() string { return "admins" }

// AdminSession backs an issued JWT; revoking the row invalidates the token.
type AdminSession struct {
	Base
	AdminID   string     `json:"-"  gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua" gorm:"type:text"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"-"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
