package repository

import (
	"context"
	"fmt"

	"comicdash/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-row lookups when the filter matches zero
// rows. It is distinct from transport/query failures so callers can tell
// "no such row" apart from "the query broke".
var ErrNotFound = gorm.ErrRecordNotFound

// BookRepository defines the table-store operations over the books table.
type BookRepository interface {
	ListTopLevel(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id string, b *models.Book) error
	Delete(ctx context.Context, id string) error
}

// bookRepository is the GORM implementation of BookRepository.
type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// ListTopLevel fetches only parent comics (parent_id is null), newest first.
func (r *bookRepository) ListTopLevel(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	// return nil on error, never a zero-value struct
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM will populate b.ID and b.CreatedAt
	return nil
}

func (r *bookRepository) Update(ctx context.Context, id string, b *models.Book) error {
	// ensure ID set for Save
	b.ID = id
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
