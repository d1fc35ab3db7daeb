package repository

import (
	"context"

	"bookstore-api/models"

	"gorm.io/gorm"
)

// CheckoutStore is the transactional write path of the checkout. Completing
// an order flips its status, grants entitlements, bumps download counters and
// removes the purchased cart entries as one atomic unit; a half-applied
// checkout would be a paid-but-undelivered defect.
type CheckoutStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CompleteOrder(ctx context.Context, order *models.Order, paymentRef string, bookIDs []uint) error
	CancelOrder(ctx context.Context, order *models.Order) error
}

// GormCheckoutStore implements CheckoutStore using GORM transactions. Each
// step runs through the same repository methods the rest of the app uses,
// constructed over the transaction handle so the statements share one unit
// of work.
type GormCheckoutStore struct {
	db *gorm.DB
}

// NewGormCheckoutStore creates a new GormCheckoutStore.
func NewGormCheckoutStore(db *gorm.DB) CheckoutStore {
	return &GormCheckoutStore{db: db}
}

// CreateOrder persists the pending order together with its lines.
func (s *GormCheckoutStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return NewGormOrderRepository(s.db).Create(ctx, order)
}

// CompleteOrder commits the post-payment writes in one transaction.
func (s *GormCheckoutStore) CompleteOrder(ctx context.Context, order *models.Order, paymentRef string, bookIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := NewGormOrderRepository(tx)
		library := NewGormLibraryRepository(tx)
		books := NewGormBookRepository(tx)
		carts := NewGormCartRepository(tx)

		if err := orders.MarkCompleted(ctx, order.ID, paymentRef); err != nil {
			return err
		}

		for _, bookID := range bookIDs {
			if err := library.Grant(ctx, order.UserID, bookID); err != nil {
				return err
			}
			if err := books.IncrementDownloads(ctx, bookID); err != nil {
				return err
			}
		}

		// Only the purchased books leave the cart; anything added mid-checkout
		// stays.
		if err := carts.DeleteByUserIDAndBookIDs(ctx, order.UserID, bookIDs); err != nil {
			return err
		}

		order.Status = models.OrderStatusCompleted
		order.PaymentRef = paymentRef
		return nil
	})
}

// CancelOrder parks the order in its terminal failed state. The cart is left
// untouched so the buyer can retry.
func (s *GormCheckoutStore) CancelOrder(ctx context.Context, order *models.Order) error {
	if err := NewGormOrderRepository(s.db).UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
		return err
	}
	order.Status = models.OrderStatusCancelled
	return nil
}
