package models

import "time"

// LibraryItem is a permanent entitlement to a book. Rows are only created by
// a completed checkout and are never deleted; the (user_id, book_id) unique
// index makes grants idempotent.
type LibraryItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_library_user_book" json:"-"`
	BookID      uint      `gorm:"not null;uniqueIndex:idx_library_user_book" json:"-"`
	Book        *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	PurchasedAt time.Time `gorm:"autoCreateTime;index" json:"purchasedAt"`
}

// DownloadGrant is a short-lived authorization to fetch an owned file.
type DownloadGrant struct {
	DownloadURL string    `json:"downloadUrl"`
	Title       string    `json:"title"`
	Format      string    `json:"format"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
