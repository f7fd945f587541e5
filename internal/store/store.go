// Package store holds the dashboard's shared in-memory cache of the current
// user, top-level books, and per-book issues. It is the sole mediator between
// API handlers and the remote table/auth services: handlers trigger fetches,
// then render whatever state the store holds. The store is a cache, not a
// source of truth; every row it holds was created by the table store and is
// replaced wholesale by the next fetch.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"comicdash/internal/models"
	"comicdash/internal/repository"
)

// Op identifies a fetch operation for the per-operation loading counters.
// Loading is tracked per operation rather than as one shared flag so an issue
// fetch finishing cannot make a still-running book fetch look complete.
type Op string

const (
	OpBooks  Op = "books"
	OpIssues Op = "issues"
)

// BookSource is the slice of the table store the book cache needs.
type BookSource interface {
	ListTopLevel(ctx context.Context) ([]models.Book, error)
}

// IssueSource is the slice of the table store the issue cache needs.
type IssueSource interface {
	ListByBook(ctx context.Context, bookID string) ([]models.Issue, error)
}

// UserSource resolves a profile row by id with single-row semantics
// (repository.ErrNotFound for zero rows).
type UserSource interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// SessionSource yields the current caller's auth user id. ok is false when no
// session is active, which is a normal state, not an error.
type SessionSource interface {
	CurrentUserID(ctx context.Context) (id string, ok bool, err error)
}

// Store is a constructed instance, not package-level state; every consumer
// gets it injected so tests can build isolated ones.
type Store struct {
	books   BookSource
	issues  IssueSource
	users   UserSource
	session SessionSource
	logger  *slog.Logger

	mu       sync.RWMutex
	user     *models.User
	bookList []models.Book
	issueMap map[string][]models.Issue
	inflight map[Op]int
	seq      map[string]uint64
	lastErr  string
}

// New creates an empty store over the given sources.
func New(books BookSource, issues IssueSource, users UserSource, session SessionSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		books:    books,
		issues:   issues,
		users:    users,
		session:  session,
		logger:   logger,
		issueMap: make(map[string][]models.Issue),
		inflight: make(map[Op]int),
		seq:      make(map[string]uint64),
	}
}

// Fetch operations never return an error: failures are collapsed to a message
// readable via Err, matching the terminal-at-the-store-boundary contract.
// Callers re-fetch after corrective action; there is no automatic retry.

// FetchBooks replaces the cached top-level book list (parent_id null, newest
// created_at first). On failure the previous list is kept. Issues and user are
// never touched.
func (s *Store) FetchBooks(ctx context.Context) {
	token := s.begin(OpBooks, keyBooks)
	defer s.end(OpBooks)

	list, err := s.books.ListTopLevel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(keyBooks, token) {
		// a newer fetch or a clear superseded this response
		return
	}
	if err != nil {
		s.lastErr = "failed to fetch books: " + err.Error()
		return
	}
	s.bookList = list
}

// FetchIssues replaces the cached issue list for one book (issue_number
// ascending). Other books' cached issues are untouched. On failure the entry
// keeps its previous state: a never-fetched book stays absent, which callers
// must treat as "retry later", not "confirmed empty".
func (s *Store) FetchIssues(ctx context.Context, bookID string) {
	key := keyIssues + bookID
	token := s.begin(OpIssues, key)
	defer s.end(OpIssues)

	list, err := s.issues.ListByBook(ctx, bookID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, token) {
		return
	}
	if err != nil {
		s.lastErr = "failed to fetch issues: " + err.Error()
		return
	}
	if list == nil {
		// fetched-and-empty must be distinguishable from never-fetched
		list = []models.Issue{}
	}
	s.issueMap[bookID] = list
}

// FetchUser resolves the current session to a profile row. No session is a
// normal state: user becomes absent, no error. A session whose id matches no
// users row is a data-integrity fault: it is logged with diagnostic detail and
// surfaced via Err, and the user is forced absent rather than left stale.
// FetchUser does not touch the loading counters, so it is safe to call
// opportunistically alongside other fetches.
func (s *Store) FetchUser(ctx context.Context) {
	token := s.next(keyUser)

	id, ok, err := s.session.CurrentUserID(ctx)
	if err != nil {
		s.logger.Error("failed to fetch auth user", "error", err)
		s.setUser(token, nil, "failed to fetch auth user: "+err.Error())
		return
	}
	if !ok {
		s.setUser(token, nil, "")
		return
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("no profile row for authenticated user",
				"user_id", id, "code", "no_rows", "details", err.Error())
			s.setUser(token, nil, "no user found in users table for id: "+id)
			return
		}
		s.logger.Error("failed to fetch user profile", "user_id", id, "error", err)
		s.setUser(token, nil, "failed to fetch user: "+err.Error())
		return
	}

	s.setUser(token, user, "")
}

// ClearBooks empties the book list and resets loading and error state. It
// deliberately leaves user and issues alone: the operation exists as a
// logout-time cleanup for the books view, and clearing the rest is the
// caller's separate responsibility. Use Reset for a full wipe.
func (s *Store) ClearBooks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// bump every fence so in-flight responses can't resurrect cleared state
	for k := range s.seq {
		s.seq[k]++
	}
	s.bookList = nil
	s.inflight = make(map[Op]int)
	s.lastErr = ""
}

// Reset wipes everything: user, books, issues, loading, error.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.seq {
		s.seq[k]++
	}
	s.user = nil
	s.bookList = nil
	s.issueMap = make(map[string][]models.Issue)
	s.inflight = make(map[Op]int)
	s.lastErr = ""
}

// Books returns a snapshot copy of the cached top-level books.
func (s *Store) Books() []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Book, len(s.bookList))
	copy(out, s.bookList)
	return out
}

// Issues returns a snapshot of one book's cached issues. ok is false when the
// book has never been fetched, which is distinct from an empty list.
func (s *Store) Issues(bookID string) ([]models.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.issueMap[bookID]
	if !ok {
		return nil, false
	}
	out := make([]models.Issue, len(list))
	copy(out, list)
	return out, true
}

// User returns the cached profile, or nil when absent.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the last fetch failure message, or "" when the most recent
// fetches succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loading reports whether any counted fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.inflight {
		if n > 0 {
			return true
		}
	}
	return false
}

// LoadingOp reports whether a specific operation is in flight.
func (s *Store) LoadingOp(op Op) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight[op] > 0
}

// resource keys for request fencing
const (
	keyBooks  = "books"
	keyUser   = "user"
	keyIssues = "issues/"
)

// begin marks an operation in flight, clears the error slot for the new
// attempt, and issues a fence token for the resource key.
func (s *Store) begin(op Op, key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[op]++
	s.lastErr = ""
	s.seq[key]++
	return s.seq[key]
}

func (s *Store) end(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[op] > 0 {
		s.inflight[op]--
	}
}

// next issues a fence token without touching the loading counters (FetchUser).
func (s *Store) next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	return s.seq[key]
}

// stale reports whether a response was superseded by a newer request for the
// same resource key. Callers must hold mu.
func (s *Store) stale(key string, token uint64) bool {
	return s.seq[key] != token
}

func (s *Store) setUser(token uint64, u *models.User, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(keyUser, token) {
		return
	}
	s.user = u
	if errMsg != "" {
		s.lastErr = errMsg
	}
}
