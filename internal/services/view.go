package services

import (
	"context"
	"slices"
	"sync"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/query"
	"github.com/sbilibin2017/school-payments-console/internal/state"
)

//go:generate mockgen -source=view.go -destination=view_mock.go -package=services

// TransactionLister fetches one page of transactions.
type TransactionLister interface {
	List(ctx context.Context, token string, q models.ListQuery) (*models.ListResponse, error)
}

// ListerFunc adapts a function to TransactionLister.
type ListerFunc func(ctx context.Context, token string, q models.ListQuery) (*models.ListResponse, error)

// List implements TransactionLister.
func (f ListerFunc) List(ctx context.Context, token string, q models.ListQuery) (*models.ListResponse, error) {
	return f(ctx, token, q)
}

// CredentialSource hands out the current bearer credential.
type CredentialSource interface {
	Credential() (models.Credential, bool)
	Generation() uint64
}

// ViewState is a consistent snapshot of a listing view. Rows[i] describes
// Data[i].
type ViewState struct {
	Filter     query.Filter         `json:"filter"`
	Pagination models.Pagination    `json:"pagination"`
	Data       []models.Transaction `json:"data"`
	Rows       []RowDisplay         `json:"rows"`
	Summary    models.Summary       `json:"summary"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
}

// RowDisplay holds the values a listing shows for one transaction beyond its
// raw fields.
type RowDisplay struct {
	OrderID        string `json:"order_id"`
	AmountMismatch bool   `json:"amount_mismatch"`
}

func rowsFor(txs []models.Transaction) []RowDisplay {
	rows := make([]RowDisplay, len(txs))
	for i, tx := range txs {
		rows[i] = RowDisplay{OrderID: tx.DisplayOrderID(), AmountMismatch: tx.AmountMismatch()}
	}
	return rows
}

// TransactionsView keeps filter, pagination, result set and summary of one
// listing consistent across overlapping fetches. Each fetch is tagged with a
// sequence number; only the response to the newest fetch is applied.
type TransactionsView struct {
	lister TransactionLister
	creds  CredentialSource

	mu     sync.Mutex
	seq    uint64
	seeded bool

	filter     *state.Cell[query.Filter]
	pagination *state.Cell[models.Pagination]
	results    *state.Cell[[]models.Transaction]
	summary    *state.Cell[models.Summary]
	loading    *state.Cell[bool]
	lastErr    *state.Cell[error]
}

// NewTransactionsView creates a view on page 1 with the given page size.
func NewTransactionsView(lister TransactionLister, creds CredentialSource, limit int) *TransactionsView {
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	v := &TransactionsView{
		lister:     lister,
		creds:      creds,
		filter:     state.NewCell(query.Filter{}),
		pagination: state.NewCell(models.Pagination{Page: 1, Limit: limit}),
		results:    state.NewCell([]models.Transaction{}),
		summary:    state.NewCell(Aggregate(nil)),
		loading:    state.NewCell(false),
		lastErr:    state.NewCell[error](nil),
	}
	v.results.Subscribe(func(txs []models.Transaction) {
		v.summary.Set(Aggregate(txs))
	})
	return v
}

// BindURL mirrors the view's filter into loc until the returned func is called.
func (v *TransactionsView) BindURL(loc query.Location) (unbind func()) {
	return query.BindURL(v.filter, loc)
}

// Seed sets the filter from a query string the first time it is called and
// reports whether it did. Invalid parameters are dropped and reported.
func (v *TransactionsView) Seed(rawQuery string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seeded {
		return false, nil
	}
	v.seeded = true

	f, err := query.Decode(rawQuery)
	if err != nil {
		logger.Log.Warnw("ignoring invalid filter parameters", "query", rawQuery, "error", err)
	}
	v.filter.Set(f)
	return true, err
}

// SetFilter merges p into the filter, moves back to page 1 and fetches.
// An invalid patch is rejected without touching state or the network.
func (v *TransactionsView) SetFilter(ctx context.Context, p query.Patch) error {
	return v.run(ctx, func() error {
		next, err := v.filter.Get().Merge(p)
		if err != nil {
			return err
		}
		v.filter.Set(next)
		v.pagination.Update(func(pg models.Pagination) models.Pagination {
			pg.Page = 1
			return pg
		})
		return nil
	})
}

// SetPage requests page n and fetches. total and pages are left as they are
// until the response arrives. Pages past the last one are sent as is.
func (v *TransactionsView) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		return &apperr.ValidationError{Field: "page", Message: "page must be at least 1"}
	}
	return v.run(ctx, func() error {
		v.pagination.Update(func(pg models.Pagination) models.Pagination {
			pg.Page = n
			return pg
		})
		return nil
	})
}

// Refresh re-runs the current query.
func (v *TransactionsView) Refresh(ctx context.Context) error {
	return v.run(ctx, nil)
}

// Reset returns the view to its initial state and lets the next Seed apply.
// Fetches still in flight are discarded when they complete.
func (v *TransactionsView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.seeded = false
	v.filter.Set(query.Filter{})
	v.pagination.Update(func(pg models.Pagination) models.Pagination {
		return models.Pagination{Page: 1, Limit: pg.Limit}
	})
	v.results.Set([]models.Transaction{})
	v.loading.Set(false)
	v.lastErr.Set(nil)
}

// Snapshot returns the current state of all cells at once.
func (v *TransactionsView) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	data := v.results.Get()
	return ViewState{
		Filter:     v.filter.Get(),
		Pagination: v.pagination.Get(),
		Data:       data,
		Rows:       rowsFor(data),
		Summary:    v.summary.Get(),
		Loading:    v.loading.Get(),
		Error:      apperr.Message(v.lastErr.Get()),
	}
}

// run applies mutate and fires one fetch for the resulting state.
func (v *TransactionsView) run(ctx context.Context, mutate func() error) error {
	v.mu.Lock()
	if mutate != nil {
		if err := mutate(); err != nil {
			v.mu.Unlock()
			return err
		}
	}
	cred, ok := v.creds.Credential()
	if !ok {
		err := notAuthenticated()
		v.lastErr.Set(err)
		v.mu.Unlock()
		return err
	}
	v.seq++
	tag := v.seq
	f := v.filter.Get()
	requested := v.pagination.Get()
	v.loading.Set(true)
	v.mu.Unlock()

	resp, err := v.lister.List(ctx, cred.Token, f.ListQuery(requested.Page, requested.Limit))

	v.mu.Lock()
	defer v.mu.Unlock()

	latest := tag == v.seq
	if latest {
		v.loading.Set(false)
	}
	if !latest || cred.Generation != v.creds.Generation() {
		logger.Log.Debugw("discarding stale list response", "seq", tag, "latest_seq", v.seq, "error", err)
		return ErrStaleResponse
	}

	if err != nil {
		logger.Log.Errorw("failed to fetch transactions",
			"page", requested.Page, "limit", requested.Limit, "error", err)
		e := transient(err, msgFetchFailed)
		v.lastErr.Set(e)
		return e
	}

	data := []models.Transaction{}
	var server models.Pagination
	if resp != nil {
		if len(resp.Data) > 0 {
			data = slices.Clone(resp.Data)
		}
		server = resp.Pagination
	}

	v.lastErr.Set(nil)
	v.results.Set(data)
	v.pagination.Set(models.Pagination{
		Page:  requested.Page,
		Limit: requested.Limit,
		Total: server.Total,
		Pages: server.Pages,
	})
	return nil
}
