package dto

import (
	"time"

	"comicdash/internal/models"
)

// CreateIssueDTO used for POST /books/:book_id/issues
type CreateIssueDTO struct {
	IssueNumber int     `json:"issue_number" binding:"required,min=1"`
	Title       string  `json:"title" binding:"required,max=255"`
	StoragePath string  `json:"storage_path" binding:"required,url"`
	Description *string `json:"description,omitempty"`
}

// UpdateIssueDTO used for PUT /issues/:issue_id (partial updates allowed)
type UpdateIssueDTO struct {
	IssueNumber *int    `json:"issue_number,omitempty" binding:"omitempty,min=1"`
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	StoragePath *string `json:"storage_path,omitempty" binding:"omitempty,url"`
	Description *string `json:"description,omitempty"`
}

// IssueResponse DTO for responses
type IssueResponse struct {
	ID          string    `json:"id"`
	BookID      string    `json:"book_id"`
	IssueNumber int       `json:"issue_number"`
	Title       string    `json:"title"`
	StoragePath string    `json:"storage_path"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Converters
func (d CreateIssueDTO) ToModel(bookID string) models.Issue {
	return models.Issue{
		BookID:      bookID,
		IssueNumber: d.IssueNumber,
		Title:       d.Title,
		StoragePath: d.StoragePath,
		Description: d.Description,
	}
}

func (d UpdateIssueDTO) ApplyTo(i *models.Issue) {
	if d.IssueNumber != nil {
		i.IssueNumber = *d.IssueNumber
	}
	if d.Title != nil {
		i.Title = *d.Title
	}
	if d.StoragePath != nil {
		i.StoragePath = *d.StoragePath
	}
	if d.Description != nil {
		i.Description = d.Description
	}
}

func FromIssueModel(i models.Issue) IssueResponse {
	return IssueResponse{
		ID:          i.ID,
		BookID:      i.BookID,
		IssueNumber: i.IssueNumber,
		Title:       i.Title,
		StoragePath: i.StoragePath,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}
