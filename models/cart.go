package models

import "time"

// CartItem is a pending purchase. The (user_id, book_id) unique index is the
// backstop against concurrent duplicate adds.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"cartItemId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"-"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"-"`
	Book      *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

// CartView is the cart joined with current book snapshots. Items whose book
// is no longer published stay listed but are flagged un-purchasable and are
// excluded from the total.
type CartView struct {
	Items       []CartViewItem `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
	ItemCount   int            `json:"itemCount"`
}

// CartViewItem is a single cart line in the cart view.
type CartViewItem struct {
	CartItemID  uint      `json:"cartItemId"`
	AddedAt     time.Time `json:"addedAt"`
	Purchasable bool      `json:"purchasable"`
	Book        *Book     `json:"book"`
}
