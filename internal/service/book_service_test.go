package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"comicdash/internal/models"
	"comicdash/internal/platform/storageclient"
	"comicdash/internal/service"
	"comicdash/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK REPOSITORIES ---
// MockBookRepo satisfies both repository.BookRepository and store.BookSource,
// so the same instance backs the service and the store it refreshes.

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) ListTopLevel(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) FindByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepo) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepo) Update(ctx context.Context, id string, b *models.Book) error {
	args := m.Called(ctx, id, b)
	return args.Error(0)
}

func (m *MockBookRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) ListByBook(ctx context.Context, bookID string) ([]models.Issue, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Issue), args.Error(1)
}

func (m *MockIssueRepo) FindByID(ctx context.Context, id string) (*models.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *MockIssueRepo) Create(ctx context.Context, i *models.Issue) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockIssueRepo) Update(ctx context.Context, id string, i *models.Issue) error {
	args := m.Called(ctx, id, i)
	return args.Error(0)
}

func (m *MockIssueRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIssueRepo) DeleteByBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

type noSession struct{}

func (noSession) CurrentUserID(ctx context.Context) (string, bool, error) {
	return "", false, nil
}

type noUsers struct{}

func (noUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	return nil, errors.New("not wired")
}

func newTestStore(books store.BookSource, issues store.IssueSource) *store.Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(books, issues, noUsers{}, noSession{}, logger)
}

// --- TESTS ---

func TestBookServiceList(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	storage := storageclient.New("http://storage.local", "covers", "")
	svc := service.NewBookService(bookRepo, issueRepo, storage, st)

	rows := []models.Book{{ID: "b1", Name: "Saga"}}
	bookRepo.On("ListTopLevel", mock.Anything).Return(rows, nil)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Saga", list[0].Name)
}

func TestBookServiceListError(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	storage := storageclient.New("http://storage.local", "covers", "")
	svc := service.NewBookService(bookRepo, issueRepo, storage, st)

	bookRepo.On("ListTopLevel", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBookServiceCreateRefetches(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	storage := storageclient.New("http://storage.local", "covers", "")
	svc := service.NewBookService(bookRepo, issueRepo, storage, st)

	b := &models.Book{Name: "Saga", Description: "space opera", Category: models.CategoryComicIssue}
	bookRepo.On("Create", mock.Anything, b).Return(nil)
	bookRepo.On("ListTopLevel", mock.Anything).Return([]models.Book{{ID: "b1", Name: "Saga"}}, nil)

	created, err := svc.Create(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Equal(t, "Saga", created.Name)

	// mutation must be followed by a cache refetch, not a local merge
	bookRepo.AssertCalled(t, "ListTopLevel", mock.Anything)
	assert.Len(t, st.Books(), 1)
}

func TestBookServiceCreateRejectsBadCover(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	storage := storageclient.New("http://storage.local", "covers", "")
	svc := service.NewBookService(bookRepo, issueRepo, storage, st)

	b := &models.Book{Name: "Saga", Category: models.CategoryComicIssue}
	cover := &service.CoverUpload{ContentType: "application/pdf", Size: 100}

	_, err := svc.Create(context.Background(), b, cover)
	assert.ErrorIs(t, err, storageclient.ErrUnsupportedType)
	bookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookServiceDeleteRemovesIssuesFirst(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	storage := storageclient.New("http://storage.local", "covers", "")
	svc := service.NewBookService(bookRepo, issueRepo, storage, st)

	bookRepo.On("FindByID", mock.Anything, "b1").Return(&models.Book{ID: "b1"}, nil)
	issueRepo.On("DeleteByBook", mock.Anything, "b1").Return(nil)
	bookRepo.On("Delete", mock.Anything, "b1").Return(nil)
	bookRepo.On("ListTopLevel", mock.Anything).Return([]models.Book{}, nil)

	err := svc.Delete(context.Background(), "b1")
	require.NoError(t, err)
	issueRepo.AssertCalled(t, "DeleteByBook", mock.Anything, "b1")
	bookRepo.AssertCalled(t, "Delete", mock.Anything, "b1")
}

func TestIssueServiceCreateRefetchesBook(t *testing.T) {
	bookRepo := new(MockBookRepo)
	issueRepo := new(MockIssueRepo)
	st := newTestStore(bookRepo, issueRepo)
	svc := service.NewIssueService(issueRepo, bookRepo, st)

	issue := &models.Issue{BookID: "b1", IssueNumber: 1, Title: "First"}
	bookRepo.On("FindByID", mock.Anything, "b1").Return(&models.Book{ID: "b1"}, nil)
	issueRepo.On("Create", mock.Anything, issue).Return(nil)
	issueRepo.On("ListByBook", mock.Anything, "b1").Return([]models.Issue{*issue}, nil)

	created, err := svc.Create(context.Background(), issue)
	require.NoError(t, err)
	assert.Equal(t, 1, created.IssueNumber)

	cached, ok := st.Issues("b1")
	require.True(t, ok)
	assert.Len(t, cached, 1)
}
