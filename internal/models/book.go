package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book categories as stored in the books table.
const (
	CategoryComicIssue   = "comic_issue"
	CategoryGraphicNovel = "graphic_novel"
)

// PriceTier is one {price, currency} pair of a book's price list.
type PriceTier struct {
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

// Book is a top-level comic or graphic novel record. Child units live in the
// comic_issues table, not as recursive books; ParentID stays null for every
// row the dashboard manages.
type Book struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"not null" json:"description"`
	Category    string      `gorm:"not null" json:"category"` // "comic_issue" or "graphic_novel"
	Price       []PriceTier `gorm:"serializer:json" json:"price,omitempty"`
	CoverImage  *string     `gorm:"column:cover_image" json:"cover_image,omitempty"`
	ParentID    *string     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate hook to set UUID before creating a Book
func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}

// ValidCategory reports whether c is one of the two book categories.
func ValidCategory(c string) bool {
	return c == CategoryComicIssue || c == CategoryGraphicNovel
}
