package models

import "time"

// Book publication status. Only published books are purchasable.
const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
)

// File types sold on the marketplace.
const (
	FileTypeEbook     = "ebook"
	FileTypeAudiobook = "audiobook"
)

// Book is a catalog item owned by a seller.
type Book struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null;index" json:"title"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Author         string    `gorm:"size:255;not null" json:"author"`
	CategoryID     uint      `gorm:"not null;index" json:"categoryId"`
	Category       *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SellerID       uint      `gorm:"not null;index" json:"sellerId"`
	Seller         *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Price          float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	OriginalPrice  *float64  `gorm:"type:numeric(10,2)" json:"originalPrice,omitempty"`
	CoverImageURL  string    `gorm:"size:500" json:"coverImageUrl,omitempty"`
	FileURL        string    `gorm:"size:500" json:"-"`
	FileType       string    `gorm:"type:varchar(20);not null" json:"fileType"`
	FileFormat     string    `gorm:"size:20;not null" json:"fileFormat"`
	FileSize       int64     `json:"fileSize,omitempty"`
	Duration       int       `json:"duration,omitempty"`
	Status         string    `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	IsFeatured     bool      `gorm:"default:false" json:"isFeatured"`
	DownloadsCount int       `gorm:"not null;default:0" json:"downloadsCount"`
	Rating         float64   `gorm:"type:numeric(3,2);default:0" json:"rating"`
	ReviewsCount   int       `gorm:"not null;default:0" json:"reviewsCount"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Published reports whether the book is currently purchasable.
func (b *Book) Published() bool {
	return b.Status == BookStatusPublished
}

// ValidBookStatus reports whether s is a valid publication status.
func ValidBookStatus(s string) bool {
	return s == BookStatusDraft || s == BookStatusPublished
}

// ValidFileType reports whether t is a supported file type.
func ValidFileType(t string) bool {
	return t == FileTypeEbook || t == FileTypeAudiobook
}
