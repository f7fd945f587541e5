package repository

import (
	"context"
	"fmt"

	"comicdash/internal/models"

	"gorm.io/gorm"
)

// IssueRepository defines the table-store operations over the comic_issues table.
type IssueRepository interface {
	ListByBook(ctx context.Context, bookID string) ([]models.Issue, error)
	FindByID(ctx context.Context, id string) (*models.Issue, error)
	Create(ctx context.Context, i *models.Issue) error
	Update(ctx context.Context, id string, i *models.Issue) error
	Delete(ctx context.Context, id string) error
	DeleteByBook(ctx context.Context, bookID string) error
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// ListByBook fetches a single book's issues ordered by issue_number ascending.
func (r *issueRepository) ListByBook(ctx context.Context, bookID string) ([]models.Issue, error) {
	var list []models.Issue
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("issue_number asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list issues for book %s: %w", bookID, err)
	}
	return list, nil
}

func (r *issueRepository) FindByID(ctx context.Context, id string) (*models.Issue, error) {
	var i models.Issue
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *issueRepository) Create(ctx context.Context, i *models.Issue) error {
	if err := r.db.WithContext(ctx).Create(i).Error; err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

func (r *issueRepository) Update(ctx context.Context, id string, i *models.Issue) error {
	i.ID = id
	if err := r.db.WithContext(ctx).Save(i).Error; err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	return nil
}

func (r *issueRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Issue{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}

// DeleteByBook removes every issue owned by a book; used when the book itself
// is deleted.
func (r *issueRepository) DeleteByBook(ctx context.Context, bookID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Issue{}, "book_id = ?", bookID).Error; err != nil {
		return fmt.Errorf("delete issues for book %s: %w", bookID, err)
	}
	return nil
}
