package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
)

//go:generate mockgen -source=schools.go -destination=schools_mock.go -package=services

// SchoolReader fetches one page of a single school's transactions.
type SchoolReader interface {
	ListBySchool(ctx context.Context, token, schoolID string, q models.ListQuery) (*models.ListResponse, error)
}

// SchoolLister pins a SchoolReader to one school id.
func SchoolLister(reader SchoolReader, schoolID string) TransactionLister {
	return ListerFunc(func(ctx context.Context, token string, q models.ListQuery) (*models.ListResponse, error) {
		return reader.ListBySchool(ctx, token, schoolID, q)
	})
}

// SchoolViews keeps one TransactionsView per school id. A view not touched
// for ttl is evicted.
type SchoolViews struct {
	reader SchoolReader
	creds  CredentialSource
	limit  int

	mu    sync.Mutex
	views *cache.Cache
}

// NewSchoolViews creates an empty registry.
func NewSchoolViews(reader SchoolReader, creds CredentialSource, limit int, ttl time.Duration) *SchoolViews {
	return &SchoolViews{
		reader: reader,
		creds:  creds,
		limit:  limit,
		views:  cache.New(ttl, 2*ttl),
	}
}

// View returns the view for schoolID, creating it on first use.
func (s *SchoolViews) View(schoolID string) (*TransactionsView, error) {
	schoolID = strings.TrimSpace(schoolID)
	if schoolID == "" {
		return nil, &apperr.ValidationError{Field: "school_id", Message: "school id is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.views.Get(schoolID); ok {
		view := v.(*TransactionsView)
		s.views.Set(schoolID, view, cache.DefaultExpiration)
		return view, nil
	}
	view := NewTransactionsView(SchoolLister(s.reader, schoolID), s.creds, s.limit)
	s.views.Set(schoolID, view, cache.DefaultExpiration)
	return view, nil
}

// Page moves the school's view to page and returns its state after the fetch.
func (s *SchoolViews) Page(ctx context.Context, schoolID string, page int) (ViewState, error) {
	view, err := s.View(schoolID)
	if err != nil {
		return ViewState{}, err
	}
	err = view.SetPage(ctx, page)
	return view.Snapshot(), err
}

// Reset drops every cached view.
func (s *SchoolViews) Reset() {
	s.views.Flush()
}

// Len returns the number of live views.
func (s *SchoolViews) Len() int {
	return s.views.ItemCount()
}
