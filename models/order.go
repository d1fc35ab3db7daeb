package models

import "time"

// Order status values. Orders are terminal once completed or cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is the immutable record of a checkout attempt.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"-"`
	TotalAmount   float64     `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod string      `gorm:"size:50;not null" json:"paymentMethod"`
	PaymentRef    string      `gorm:"size:100" json:"paymentRef,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"-"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem records one purchased book. Price is captured at checkout and
// never re-read from the catalog.
type OrderItem struct {
	ID      uint    `gorm:"primaryKey" json:"-"`
	OrderID uint    `gorm:"not null;index" json:"-"`
	BookID  uint    `gorm:"not null;index" json:"bookId"`
	Book    *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Price   float64 `gorm:"type:numeric(10,2);not null" json:"priceAtPurchase"`
}

// OrderSummary is an order history row with its line count.
type OrderSummary struct {
	ID            uint      `json:"id"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	ItemCount     int64     `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
