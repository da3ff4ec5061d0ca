package models

import (
	"time"

	"gorm.io/gorm"
)

type AppRole string

const (
	RoleUser      AppRole = "user"
	RoleModerator AppRole = "moderator"
	RoleAdmin     AppRole = "admin"
)

func (r AppRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authentication record. The directory entry users actually
// see lives in Profile, keyed by the same ID.
type Identity struct {
	ID           string         `gorm:"primaryKey;type:uuid"`
	Email        string         `gorm:"uniqueIndex;not null"`
	Password     string         `gorm:"not null;column:password"`
	Actif        bool           `gorm:"default:true;column:actif"`
	RefreshToken string         `gorm:"type:text;column:refresh_token"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// Profile is created exactly once, on the identity's first successful
// authentication. Role is computed at creation and never re-derived.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"uniqueIndex;not null"`
	FullName  string    `gorm:"column:full_name"`
	Role      AppRole   `gorm:"type:varchar(20);default:'user';not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
