package service

import (
	"context"
	"errors"
	"io"

	"comicdash/internal/models"
	"comicdash/internal/platform/storageclient"
	"comicdash/internal/repository"
	"comicdash/internal/store"
)

// CoverUpload is an incoming cover image from the multipart book form.
type CoverUpload struct {
	ContentType string
	Size        int64
	Reader      io.Reader
}

// BookService wraps book mutations with cover handling and keeps the shared
// store's cache fresh: every write is followed by a refetch, never a local
// merge.
type BookService interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, b *models.Book, cover *CoverUpload) (*models.Book, error)
	Update(ctx context.Context, id string, b *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type bookService struct {
	bookRepo  repository.BookRepository
	issueRepo repository.IssueRepository
	storage   *storageclient.Client
	st        *store.Store
}

func NewBookService(
	bookRepo repository.BookRepository,
	issueRepo repository.IssueRepository,
	storage *storageclient.Client,
	st *store.Store,
) BookService {
	return &bookService{
		bookRepo:  bookRepo,
		issueRepo: issueRepo,
		storage:   storage,
		st:        st,
	}
}

// List refreshes the store's book cache and returns the cached list.
func (s *bookService) List(ctx context.Context) ([]models.Book, error) {
	s.st.FetchBooks(ctx)
	if msg := s.st.Err(); msg != "" {
		return nil, errors.New(msg)
	}
	return s.st.Books(), nil
}

func (s *bookService) Get(ctx context.Context, id string) (*models.Book, error) {
	return s.bookRepo.FindByID(ctx, id)
}

// Create uploads the cover first (if any) so a failed upload never leaves a
// coverless row behind, then inserts and refetches.
func (s *bookService) Create(ctx context.Context, b *models.Book, cover *CoverUpload) (*models.Book, error) {
	if cover != nil {
		key := storageclient.CoverKey(b.ID, cover.ContentType)
		url, err := s.storage.Upload(ctx, key, cover.ContentType, cover.Reader, cover.Size)
		if err != nil {
			return nil, err
		}
		b.CoverImage = &url
	}

	if err := s.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.st.FetchBooks(ctx)
	return b, nil
}

func (s *bookService) Update(ctx context.Context, id string, b *models.Book) (*models.Book, error) {
	if err := s.bookRepo.Update(ctx, id, b); err != nil {
		return nil, err
	}
	s.st.FetchBooks(ctx)
	return b, nil
}

// Delete removes the book's issues, the row, and (best-effort) its cover
// object, then refetches the list.
func (s *bookService) Delete(ctx context.Context, id string) error {
	b, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.issueRepo.DeleteByBook(ctx, id); err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	// the row is gone either way; an orphaned object is tolerable
	if b.CoverImage != nil {
		if key, ok := s.storage.KeyFromPublicURL(*b.CoverImage); ok {
			_ = s.storage.Delete(ctx, key)
		}
	}

	s.st.FetchBooks(ctx)
	return nil
}
