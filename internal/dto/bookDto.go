package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"comicdash/internal/models"
)

// CreateBookDTO used for POST /books. The form is multipart because of the
// optional cover file; price arrives as a JSON-encoded array field.
type CreateBookDTO struct {
	Name        string `form:"name" binding:"required,max=255"`
	Description string `form:"description" binding:"required,max=1000"`
	Category    string `form:"category" binding:"required,oneof=comic_issue graphic_novel"`
	Price       string `form:"price"`
}

// UpdateBookDTO used for PUT /books/:book_id (partial updates allowed)
type UpdateBookDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Category    *string `json:"category,omitempty" binding:"omitempty,oneof=comic_issue graphic_novel"`
	Price       *[]models.PriceTier `json:"price,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty" binding:"omitempty,url"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Price       []models.PriceTier `json:"price,omitempty"`
	CoverImage  *string            `json:"cover_image,omitempty"`
	ParentID    *string            `json:"parent_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Converters
func (d CreateBookDTO) ToModel() (models.Book, error) {
	b := models.Book{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
	}
	if d.Price != "" {
		var tiers []models.PriceTier
		if err := json.Unmarshal([]byte(d.Price), &tiers); err != nil {
			return models.Book{}, fmt.Errorf("price must be a JSON array of {price, currency}: %w", err)
		}
		b.Price = tiers
	}
	return b, nil
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Name != nil {
		b.Name = *d.Name
	}
	if d.Description != nil {
		b.Description = *d.Description
	}
	if d.Category != nil {
		b.Category = *d.Category
	}
	if d.Price != nil {
		b.Price = *d.Price
	}
	if d.CoverImage != nil {
		b.CoverImage = d.CoverImage
	}
}

func FromBookModel(b models.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Price:       b.Price,
		CoverImage:  b.CoverImage,
		ParentID:    b.ParentID,
		CreatedAt:   b.CreatedAt,
	}
}
