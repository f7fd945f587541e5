package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue is a numbered child unit of a Book. IssueNumber is the sole sort key
// when listing a book's issues.
type Issue struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	BookID      string    `gorm:"type:uuid;not null;index" json:"book_id"`
	IssueNumber int       `gorm:"not null" json:"issue_number"`
	Title       string    `gorm:"not null" json:"title"`
	StoragePath string    `gorm:"not null" json:"storage_path"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate hook to set UUID before creating an Issue
func (i *Issue) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (Issue) TableName() string {
	return "comic_issues"
}
