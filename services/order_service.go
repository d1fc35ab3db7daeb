package services

import (
	"context"
	"fmt"
	"net/http"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutRequest is the payload for a checkout attempt.
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// OrderListResponse wraps a page of order summaries.
type OrderListResponse struct {
	Orders     []models.OrderSummary `json:"orders"`
	Pagination Pagination            `json:"pagination"`
}

// OrderService converts carts into orders and serves order history.
type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	store     repository.CheckoutStore
	payments  PaymentProvider
	cache     CacheInvalidator
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	store repository.CheckoutStore,
	payments PaymentProvider,
	cache CacheInvalidator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		store:     store,
		payments:  payments,
		cache:     cache,
		logger:    logger,
	}
}

// Checkout turns the caller's cart into an order.
//
// The flow is pending order -> charge -> completion. The pending order is
// committed before the charge so a failed payment still leaves an inspectable
// cancelled order; the post-payment writes (status flip, entitlements,
// download counters, cart removal) commit atomically in the store.
func (s *OrderService) Checkout(ctx context.Context, userID uint, req CheckoutRequest) (*models.Order, *ServiceError) {
	entries, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Checkout cart fetch failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch cart")
	}
	if len(entries) == 0 {
		return nil, NewServiceError(http.StatusBadRequest, "Cart is empty")
	}

	// Every line must be purchasable before a single write happens. Prices
	// are captured here; concurrent catalog edits cannot move the total.
	var total float64
	items := make([]models.OrderItem, 0, len(entries))
	bookIDs := make([]uint, 0, len(entries))
	for _, entry := range entries {
		if entry.Book == nil || !entry.Book.Published() {
			title := fmt.Sprintf("book %d", entry.BookID)
			if entry.Book != nil {
				title = entry.Book.Title
			}
			return nil, NewServiceError(http.StatusConflict,
				fmt.Sprintf("%q is no longer available; remove it from your cart to continue", title))
		}
		total += entry.Book.Price
		items = append(items, models.OrderItem{BookID: entry.BookID, Price: entry.Book.Price})
		bookIDs = append(bookIDs, entry.BookID)
	}

	order := &models.Order{
		UserID:        userID,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Checkout order create failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to create order")
	}

	paymentRef, err := s.payments.Charge(ctx, userID, total, req.PaymentMethod)
	if err != nil {
		s.logger.Warn("Checkout payment declined",
			zap.Error(err), zap.Uint("user_id", userID), zap.Uint("order_id", order.ID))
		if cancelErr := s.store.CancelOrder(ctx, order); cancelErr != nil {
			s.logger.Error("Checkout order cancel failed",
				zap.Error(cancelErr), zap.Uint("order_id", order.ID))
		}
		return nil, NewServiceError(http.StatusBadRequest, "Payment failed")
	}

	if err := s.store.CompleteOrder(ctx, order, paymentRef, bookIDs); err != nil {
		// Paid but not delivered. The pending order and payment ref are in
		// the log for manual reconciliation.
		s.logger.Error("Checkout completion failed",
			zap.Error(err), zap.Uint("order_id", order.ID), zap.String("payment_ref", paymentRef))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to finalize order")
	}

	// Download counters changed; listings sorted by popularity are stale.
	// One version bump covers every list key, then each purchased book's
	// detail entry is dropped.
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Checkout cache invalidation failed",
			zap.Error(err), zap.Uint("order_id", order.ID))
	}
	for _, bookID := range bookIDs {
		s.cache.DropBook(bookID)
	}

	s.logger.Info("Checkout completed",
		zap.Uint("user_id", userID),
		zap.Uint("order_id", order.ID),
		zap.Float64("total", total),
		zap.Int("items", len(items)))
	return order, nil
}

// GetUserOrders returns the caller's order history, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID uint, page, limit int) (*OrderListResponse, *ServiceError) {
	summaries, total, err := s.orderRepo.FindSummariesByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("GetUserOrders failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	return &OrderListResponse{
		Orders:     summaries,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// GetOrderByID returns one of the caller's orders with its lines.
func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID uint) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "Order not found")
		}
		s.logger.Error("GetOrderByID failed", zap.Error(err), zap.Uint("order_id", orderID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch order")
	}
	return order, nil
}
