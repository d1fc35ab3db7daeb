package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles assignable to a user account.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Role         string    `gorm:"type:varchar(50);not null;default:'user'" json:"role"`
	IsVerified   bool      `gorm:"default:false" json:"isVerified"`
	AvatarURL    string    `gorm:"size:500" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

// ValidRole reports whether r is a role accepted at registration time.
// Admin accounts are provisioned out of band.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleSeller
}

// Migrate runs auto migration for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Book{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&LibraryItem{},
	)
}
