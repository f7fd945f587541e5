package service

import (
	"context"
	"errors"

	"comicdash/internal/models"
	"comicdash/internal/repository"
	"comicdash/internal/store"
)

// IssueService wraps issue mutations and keeps the store's per-book issue
// cache fresh via refetch.
type IssueService interface {
	ListForBook(ctx context.Context, bookID string) ([]models.Issue, error)
	Get(ctx context.Context, id string) (*models.Issue, error)
	Create(ctx context.Context, i *models.Issue) (*models.Issue, error)
	Update(ctx context.Context, id string, i *models.Issue) (*models.Issue, error)
	Delete(ctx context.Context, id string) error
}

type issueService struct {
	issueRepo repository.IssueRepository
	bookRepo  repository.BookRepository
	st        *store.Store
}

func NewIssueService(issueRepo repository.IssueRepository, bookRepo repository.BookRepository, st *store.Store) IssueService {
	return &issueService{
		issueRepo: issueRepo,
		bookRepo:  bookRepo,
		st:        st,
	}
}

// ListForBook refreshes the store's cache for one book and returns it.
func (s *issueService) ListForBook(ctx context.Context, bookID string) ([]models.Issue, error) {
	s.st.FetchIssues(ctx, bookID)
	if msg := s.st.Err(); msg != "" {
		return nil, errors.New(msg)
	}
	list, _ := s.st.Issues(bookID)
	return list, nil
}

func (s *issueService) Get(ctx context.Context, id string) (*models.Issue, error) {
	return s.issueRepo.FindByID(ctx, id)
}

// Create verifies the owning book exists before inserting.
func (s *issueService) Create(ctx context.Context, i *models.Issue) (*models.Issue, error) {
	if _, err := s.bookRepo.FindByID(ctx, i.BookID); err != nil {
		return nil, err
	}
	if err := s.issueRepo.Create(ctx, i); err != nil {
		return nil, err
	}
	s.st.FetchIssues(ctx, i.BookID)
	return i, nil
}

func (s *issueService) Update(ctx context.Context, id string, i *models.Issue) (*models.Issue, error) {
	existing, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// the owning book never changes on edit
	i.BookID = existing.BookID
	if err := s.issueRepo.Update(ctx, id, i); err != nil {
		return nil, err
	}
	s.st.FetchIssues(ctx, i.BookID)
	return i, nil
}

func (s *issueService) Delete(ctx context.Context, id string) error {
	existing, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.issueRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.st.FetchIssues(ctx, existing.BookID)
	return nil
}
