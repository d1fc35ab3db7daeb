package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore-api/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	BookCachePrefix     = "book:detail:"
	BookListCachePrefix = "books:v:"
	CacheVersionKey     = "books:version"

	DefaultCacheTTL = 5 * time.Minute
)

// CacheInvalidator is the slice of the cache manager that mutation paths
// need: bump the list-cache version and drop single detail entries.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
	DropBook(bookID uint)
}

// CacheManager handles Redis caching for the catalog. A nil redis client
// disables caching entirely.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetBookList retrieves a cached catalog page.
func (cm *CacheManager) GetBookList(ctx context.Context, key string) (*BookListResponse, bool) {
	if !cm.enabled() {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version, key)).Result()
	if err != nil {
		return nil, false
	}

	var response BookListResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached book list", zap.Error(err))
		return nil, false
	}
	return &response, true
}

// SetBookListAsync caches a catalog page asynchronously.
func (cm *CacheManager) SetBookListAsync(key string, response *BookListResponse) {
	if !cm.enabled() {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal book list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listKey(version, key), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache book list", zap.Error(err))
		}
	}()
}

// GetBook retrieves a cached book detail.
func (cm *CacheManager) GetBook(ctx context.Context, bookID uint) (*models.Book, bool) {
	if !cm.enabled() {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, fmt.Sprintf("%s%d", BookCachePrefix, bookID)).Result()
	if err != nil {
		return nil, false
	}

	var book models.Book
	if err := json.Unmarshal([]byte(cached), &book); err != nil {
		zap.L().Warn("Failed to unmarshal cached book", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, false
	}
	return &book, true
}

// SetBookAsync caches a single book asynchronously.
func (cm *CacheManager) SetBookAsync(book *models.Book) {
	if !cm.enabled() {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(book)
		if err != nil {
			zap.L().Warn("Failed to marshal book for cache", zap.Error(err), zap.Uint("book_id", book.ID))
			return
		}

		key := fmt.Sprintf("%s%d", BookCachePrefix, book.ID)
		if err := cm.redis.Set(bgCtx, key, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache book", zap.Error(err), zap.Uint("book_id", book.ID))
		}
	}()
}

// Invalidate invalidates all list caches by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	if !cm.enabled() {
		return nil
	}

	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Info("Book cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// DropBook removes one book's detail cache entry. List caches are not
// touched; callers pair this with a single Invalidate when listings change.
func (cm *CacheManager) DropBook(bookID uint) {
	if !cm.enabled() {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		key := fmt.Sprintf("%s%d", BookCachePrefix, bookID)
		if err := cm.redis.Del(bgCtx, key).Err(); err != nil {
			zap.L().Warn("Failed to delete book cache", zap.Error(err), zap.Uint("book_id", bookID))
		}
	}()
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		// First access seeds the version key.
		if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (cm *CacheManager) listKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", BookListCachePrefix, version, key)
}
