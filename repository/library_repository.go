package repository

import (
	"context"

	"bookstore-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LibraryRepository defines data-access operations for entitlements.
type LibraryRepository interface {
	Has(ctx context.Context, userID, bookID uint) (bool, error)
	Grant(ctx context.Context, userID, bookID uint) error
	FindByUserID(ctx context.Context, userID uint, page, limit int) ([]models.LibraryItem, int64, error)
	FindWithBook(ctx context.Context, userID, bookID uint) (*models.LibraryItem, error)
}

// GormLibraryRepository implements LibraryRepository using GORM.
type GormLibraryRepository struct {
	db *gorm.DB
}

// NewGormLibraryRepository creates a new GormLibraryRepository.
func NewGormLibraryRepository(db *gorm.DB) LibraryRepository {
	return &GormLibraryRepository{db: db}
}

func (r *GormLibraryRepository) Has(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// Grant inserts the entitlement with insert-or-ignore semantics. Granting an
// already-owned book is a no-op, which makes retried checkouts safe.
func (r *GormLibraryRepository) Grant(ctx context.Context, userID, bookID uint) error {
	item := models.LibraryItem{UserID: userID, BookID: bookID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoNothing: true,
		}).
		Create(&item).Error
}

// FindByUserID pages through the library, most recent purchase first with a
// deterministic tie-break on book ID.
func (r *GormLibraryRepository) FindByUserID(ctx context.Context, userID uint, page, limit int) ([]models.LibraryItem, int64, error) {
	var items []models.LibraryItem
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Book").
		Preload("Book.Category").
		Order("purchased_at DESC, book_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *GormLibraryRepository) FindWithBook(ctx context.Context, userID, bookID uint) (*models.LibraryItem, error) {
	var item models.LibraryItem
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
