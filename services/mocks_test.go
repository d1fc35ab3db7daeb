package services_test

import (
	"context"
	"time"

	"bookstore-api/models"
	"bookstore-api/repository"
)

// ---- mock user repository ----

type mockUserRepo struct {
	findByEmailUser *models.User
	findByEmailErr  error
	findByIDUser    *models.User
	findByIDErr     error
	createErr       error
	updateErr       error
	created         *models.User
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return m.findByEmailUser, m.findByEmailErr
}
func (m *mockUserRepo) FindByID(_ context.Context, _ uint) (*models.User, error) {
	return m.findByIDUser, m.findByIDErr
}
func (m *mockUserRepo) Create(_ context.Context, u *models.User) error {
	if m.createErr == nil {
		u.ID = 1
		m.created = u
	}
	return m.createErr
}
func (m *mockUserRepo) Update(_ context.Context, u *models.User) error {
	return m.updateErr
}

// ---- mock book repository ----

type mockBookRepo struct {
	searchBooks      []models.Book
	searchTotal      int64
	searchErr        error
	featuredBooks    []models.Book
	featuredErr      error
	publishedBook    *models.Book
	publishedErr     error
	ownedBook        *models.Book
	ownedErr         error
	sellerBooks      []models.Book
	sellerTotal      int64
	sellerErr        error
	countBySeller    int64
	countBySellerErr error
	createErr        error
	updatesErr       error
	deleteErr        error
	incrementErr     error

	updatedFields map[string]interface{}
	deletedID     uint
	incrementedID []uint
}

func (m *mockBookRepo) Search(_ context.Context, _ repository.BookSearchParams) ([]models.Book, int64, error) {
	return m.searchBooks, m.searchTotal, m.searchErr
}
func (m *mockBookRepo) FindFeatured(_ context.Context, _ int) ([]models.Book, error) {
	return m.featuredBooks, m.featuredErr
}
func (m *mockBookRepo) FindPublishedByID(_ context.Context, _ uint) (*models.Book, error) {
	return m.publishedBook, m.publishedErr
}
func (m *mockBookRepo) FindByIDAndSellerID(_ context.Context, _, _ uint) (*models.Book, error) {
	return m.ownedBook, m.ownedErr
}
func (m *mockBookRepo) FindBySellerID(_ context.Context, _ uint, _, _ int) ([]models.Book, int64, error) {
	return m.sellerBooks, m.sellerTotal, m.sellerErr
}
func (m *mockBookRepo) CountBySellerID(_ context.Context, _ uint) (int64, error) {
	return m.countBySeller, m.countBySellerErr
}
func (m *mockBookRepo) Create(_ context.Context, b *models.Book) error {
	if m.createErr == nil {
		b.ID = 42
	}
	return m.createErr
}
func (m *mockBookRepo) Updates(_ context.Context, _ uint, fields map[string]interface{}) error {
	m.updatedFields = fields
	return m.updatesErr
}
func (m *mockBookRepo) Delete(_ context.Context, id uint) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockBookRepo) IncrementDownloads(_ context.Context, id uint) error {
	m.incrementedID = append(m.incrementedID, id)
	return m.incrementErr
}

// ---- mock cart repository ----

type mockCartRepo struct {
	items          []models.CartItem
	findErr        error
	exists         bool
	existsErr      error
	createErr      error
	deleteRows     int64
	deleteErr      error
	clearErr       error
	clearScopedErr error

	createdItem    *models.CartItem
	clearedUser    uint
	clearedBookIDs []uint
}

func (m *mockCartRepo) FindByUserID(_ context.Context, _ uint) ([]models.CartItem, error) {
	return m.items, m.findErr
}
func (m *mockCartRepo) Exists(_ context.Context, _, _ uint) (bool, error) {
	return m.exists, m.existsErr
}
func (m *mockCartRepo) Create(_ context.Context, item *models.CartItem) error {
	if m.createErr == nil {
		item.ID = 7
		m.createdItem = item
	}
	return m.createErr
}
func (m *mockCartRepo) DeleteByIDAndUserID(_ context.Context, _, _ uint) (int64, error) {
	return m.deleteRows, m.deleteErr
}
func (m *mockCartRepo) DeleteByUserID(_ context.Context, userID uint) error {
	m.clearedUser = userID
	return m.clearErr
}
func (m *mockCartRepo) DeleteByUserIDAndBookIDs(_ context.Context, userID uint, bookIDs []uint) error {
	m.clearedUser = userID
	m.clearedBookIDs = bookIDs
	return m.clearScopedErr
}

// ---- mock library repository ----

type mockLibraryRepo struct {
	has         bool
	hasErr      error
	grantErr    error
	items       []models.LibraryItem
	itemsTotal  int64
	itemsErr    error
	withBook    *models.LibraryItem
	withBookErr error

	granted [][2]uint
}

func (m *mockLibraryRepo) Has(_ context.Context, _, _ uint) (bool, error) {
	return m.has, m.hasErr
}
func (m *mockLibraryRepo) Grant(_ context.Context, userID, bookID uint) error {
	if m.grantErr == nil {
		m.granted = append(m.granted, [2]uint{userID, bookID})
	}
	return m.grantErr
}
func (m *mockLibraryRepo) FindByUserID(_ context.Context, _ uint, _, _ int) ([]models.LibraryItem, int64, error) {
	return m.items, m.itemsTotal, m.itemsErr
}
func (m *mockLibraryRepo) FindWithBook(_ context.Context, _, _ uint) (*models.LibraryItem, error) {
	return m.withBook, m.withBookErr
}

// ---- mock category repository ----

type mockCategoryRepo struct {
	categories []models.CategoryWithCount
	listErr    error
	category   *models.CategoryWithCount
	findErr    error
	exists     bool
	existsErr  error
}

func (m *mockCategoryRepo) ListWithCounts(_ context.Context) ([]models.CategoryWithCount, error) {
	return m.categories, m.listErr
}
func (m *mockCategoryRepo) FindWithCount(_ context.Context, _ uint) (*models.CategoryWithCount, error) {
	return m.category, m.findErr
}
func (m *mockCategoryRepo) Exists(_ context.Context, _ uint) (bool, error) {
	return m.exists, m.existsErr
}

// ---- mock order repository ----

type mockOrderRepo struct {
	createErr    error
	statusErr    error
	summaries    []models.OrderSummary
	summaryTotal int64
	summariesErr error
	order        *models.Order
	orderErr     error
	salesCount   int64
	salesErr     error
	stats        *repository.SellerStats
	statsErr     error
	recent       []repository.SellerSale
	recentErr    error
}

func (m *mockOrderRepo) Create(_ context.Context, o *models.Order) error { return m.createErr }
func (m *mockOrderRepo) MarkCompleted(_ context.Context, _ uint, _ string) error {
	return m.statusErr
}
func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ uint, _ string) error { return m.statusErr }
func (m *mockOrderRepo) FindSummariesByUserID(_ context.Context, _ uint, _, _ int) ([]models.OrderSummary, int64, error) {
	return m.summaries, m.summaryTotal, m.summariesErr
}
func (m *mockOrderRepo) FindByIDAndUserID(_ context.Context, _, _ uint) (*models.Order, error) {
	return m.order, m.orderErr
}
func (m *mockOrderRepo) CountSalesByBookID(_ context.Context, _ uint) (int64, error) {
	return m.salesCount, m.salesErr
}
func (m *mockOrderRepo) StatsBySellerID(_ context.Context, _ uint) (*repository.SellerStats, error) {
	return m.stats, m.statsErr
}
func (m *mockOrderRepo) RecentSalesBySellerID(_ context.Context, _ uint, _ int) ([]repository.SellerSale, error) {
	return m.recent, m.recentErr
}

// ---- mock checkout store ----

type mockCheckoutStore struct {
	createErr   error
	completeErr error
	cancelErr   error

	createdOrder   *models.Order
	completedRef   string
	completedBooks []uint
	cancelled      bool
}

func (m *mockCheckoutStore) CreateOrder(_ context.Context, order *models.Order) error {
	if m.createErr == nil {
		order.ID = 99
		m.createdOrder = order
	}
	return m.createErr
}
func (m *mockCheckoutStore) CompleteOrder(_ context.Context, order *models.Order, paymentRef string, bookIDs []uint) error {
	if m.completeErr == nil {
		order.Status = models.OrderStatusCompleted
		order.PaymentRef = paymentRef
		m.completedRef = paymentRef
		m.completedBooks = bookIDs
	}
	return m.completeErr
}
func (m *mockCheckoutStore) CancelOrder(_ context.Context, order *models.Order) error {
	if m.cancelErr == nil {
		order.Status = models.OrderStatusCancelled
		m.cancelled = true
	}
	return m.cancelErr
}

// ---- mock payment provider ----

type mockPayments struct {
	ref       string
	chargeErr error

	chargedAmount float64
	chargedMethod string
	calls         int
}

func (m *mockPayments) Charge(_ context.Context, _ uint, amount float64, method string) (string, error) {
	m.calls++
	m.chargedAmount = amount
	m.chargedMethod = method
	if m.chargeErr != nil {
		return "", m.chargeErr
	}
	return m.ref, nil
}

// ---- mock downloader ----

type mockDownloader struct {
	url string
	err error

	presignedFile string
	presignedTTL  time.Duration
}

func (m *mockDownloader) PresignDownload(_ context.Context, fileURL string, expiry time.Duration) (string, error) {
	m.presignedFile = fileURL
	m.presignedTTL = expiry
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

// ---- mock cache invalidator ----

type mockCache struct {
	invalidateErr error

	invalidations int
	dropped       []uint
}

func (m *mockCache) Invalidate(_ context.Context) error {
	m.invalidations++
	return m.invalidateErr
}

func (m *mockCache) DropBook(bookID uint) { m.dropped = append(m.dropped, bookID) }
