package repository

import (
	"context"

	"bookstore-api/models"

	"gorm.io/gorm"
)

// CartRepository defines data-access operations for cart entries.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]models.CartItem, error)
	Exists(ctx context.Context, userID, bookID uint) (bool, error)
	Create(ctx context.Context, item *models.CartItem) error
	DeleteByIDAndUserID(ctx context.Context, id, userID uint) (int64, error)
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteByUserIDAndBookIDs(ctx context.Context, userID uint, bookIDs []uint) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// FindByUserID returns the user's cart entries with current book snapshots,
// newest first. Entries are returned regardless of the book's status; the
// service layer decides how un-published books surface.
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// DeleteByIDAndUserID removes one entry scoped to its owner and reports how
// many rows went away, so callers can 404 on someone else's entry.
func (r *GormCartRepository) DeleteByIDAndUserID(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *GormCartRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// DeleteByUserIDAndBookIDs removes exactly the given books from the user's
// cart. Checkout uses this instead of a blind clear so items added while the
// checkout was in flight survive.
func (r *GormCartRepository) DeleteByUserIDAndBookIDs(ctx context.Context, userID uint, bookIDs []uint) error {
	if len(bookIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND book_id IN ?", userID, bookIDs).
		Delete(&models.CartItem{}).Error
}
