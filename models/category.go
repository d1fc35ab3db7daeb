package models

// Category is the catalog taxonomy. Icon and Gradient are presentation hints
// consumed by the frontend.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	NameEn      string `gorm:"size:100" json:"nameEn"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	Icon        string `gorm:"size:100" json:"icon,omitempty"`
	Gradient    string `gorm:"size:100" json:"gradient,omitempty"`
}

// CategoryWithCount is a Category joined with its published book count.
type CategoryWithCount struct {
	Category
	BookCount int64 `json:"bookCount"`
}
