package repository

import (
	"context"
	"time"

	"bookstore-api/models"

	"gorm.io/gorm"
)

// SellerStats aggregates a seller's completed sales.
type SellerStats struct {
	TotalSales   int64   `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// SellerSale is one completed sale line for the seller dashboard.
type SellerSale struct {
	OrderID   uint      `json:"orderId"`
	BookTitle string    `json:"bookTitle"`
	Price     float64   `json:"price"`
	BuyerName string    `json:"buyerName"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderRepository defines data-access operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	MarkCompleted(ctx context.Context, id uint, paymentRef string) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	FindSummariesByUserID(ctx context.Context, userID uint, page, limit int) ([]models.OrderSummary, int64, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*models.Order, error)
	CountSalesByBookID(ctx context.Context, bookID uint) (int64, error)
	StatsBySellerID(ctx context.Context, sellerID uint) (*SellerStats, error)
	RecentSalesBySellerID(ctx context.Context, sellerID uint, limit int) ([]SellerSale, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// MarkCompleted flips the order to completed and records the payment reference.
func (r *GormOrderRepository) MarkCompleted(ctx context.Context, id uint, paymentRef string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.OrderStatusCompleted,
			"payment_ref": paymentRef,
		}).Error
}

// UpdateStatus sets the order status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormOrderRepository) FindSummariesByUserID(ctx context.Context, userID uint, page, limit int) ([]models.OrderSummary, int64, error) {
	var summaries []models.OrderSummary
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.id, orders.total_amount, orders.status, orders.payment_method, orders.created_at, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&summaries).Error
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Book").
		Preload("Items.Book.Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CountSalesByBookID counts order lines referencing the book. Any nonzero
// result blocks a hard delete of the book.
func (r *GormOrderRepository) CountSalesByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) StatsBySellerID(ctx context.Context, sellerID uint) (*SellerStats, error) {
	var stats SellerStats
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("COUNT(order_items.id) AS total_sales, COALESCE(SUM(order_items.price), 0) AS total_revenue").
		Joins("JOIN books ON books.id = order_items.book_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("books.seller_id = ? AND orders.status = ?", sellerID, models.OrderStatusCompleted).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *GormOrderRepository) RecentSalesBySellerID(ctx context.Context, sellerID uint, limit int) ([]SellerSale, error) {
	var sales []SellerSale
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("orders.id AS order_id, books.title AS book_title, order_items.price, users.first_name || ' ' || users.last_name AS buyer_name, orders.created_at").
		Joins("JOIN books ON books.id = order_items.book_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("books.seller_id = ? AND orders.status = ?", sellerID, models.OrderStatusCompleted).
		Order("orders.created_at DESC").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}
