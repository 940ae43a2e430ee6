package facades

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sbilibin2017/school-payments-console/internal/models"
)

// TransactionsHTTPFacade reads transactions from the collaborator.
type TransactionsHTTPFacade struct {
	client *Client
}

// NewTransactionsHTTPFacade creates a new facade over client.
func NewTransactionsHTTPFacade(client *Client) *TransactionsHTTPFacade {
	return &TransactionsHTTPFacade{client: client}
}

// List fetches one page of the global transaction list.
func (f *TransactionsHTTPFacade) List(ctx context.Context, token string, q models.ListQuery) (*models.ListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("sort", q.Sort)
	if q.Status != nil {
		params.Set("status", string(*q.Status))
	}
	if q.SchoolID != nil {
		params.Set("school_id", *q.SchoolID)
	}

	var resp models.ListResponse
	if err := f.client.do(ctx, http.MethodGet, "/transactions", params, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBySchool fetches one page of a single school's transactions. Only the
// page and limit of q are sent.
func (f *TransactionsHTTPFacade) ListBySchool(ctx context.Context, token, schoolID string, q models.ListQuery) (*models.ListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))

	var resp models.ListResponse
	path := "/transactions/school/" + url.PathEscape(schoolID)
	if err := f.client.do(ctx, http.MethodGet, path, params, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStatus looks up one transaction by custom order id. It returns nil and
// no error when the collaborator answers with an empty body.
func (f *TransactionsHTTPFacade) GetStatus(ctx context.Context, token, customOrderID string) (*models.StatusLookupResult, error) {
	var resp *models.StatusLookupResult
	path := "/transactions/status/" + url.PathEscape(customOrderID)
	if err := f.client.do(ctx, http.MethodGet, path, nil, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
