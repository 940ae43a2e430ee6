package services

import (
	"context"
	"strings"
	"sync"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/state"
)

//go:generate mockgen -source=status.go -destination=status_mock.go -package=services

// StatusReader looks up a single transaction by custom order id.
type StatusReader interface {
	GetStatus(ctx context.Context, token, customOrderID string) (*models.StatusLookupResult, error)
}

// StatusState is a snapshot of the lookup flow.
type StatusState struct {
	Result  *models.StatusLookupResult `json:"result,omitempty"`
	Loading bool                       `json:"loading"`
	Error   string                     `json:"error,omitempty"`
}

// StatusLookup runs status lookups independently of any listing view.
type StatusLookup struct {
	reader StatusReader
	creds  CredentialSource

	mu      sync.Mutex
	seq     uint64
	result  *state.Cell[*models.StatusLookupResult]
	loading *state.Cell[bool]
	lastErr *state.Cell[error]
}

// NewStatusLookup creates an idle lookup flow.
func NewStatusLookup(reader StatusReader, creds CredentialSource) *StatusLookup {
	return &StatusLookup{
		reader:  reader,
		creds:   creds,
		result:  state.NewCell[*models.StatusLookupResult](nil),
		loading: state.NewCell(false),
		lastErr: state.NewCell[error](nil),
	}
}

// Lookup fetches the transaction for customOrderID. Blank input is rejected
// locally. A missing transaction yields *apperr.NotFoundError.
func (l *StatusLookup) Lookup(ctx context.Context, customOrderID string) (*models.StatusLookupResult, error) {
	customOrderID = strings.TrimSpace(customOrderID)

	l.mu.Lock()
	if customOrderID == "" {
		err := &apperr.ValidationError{Field: "custom_order_id", Message: msgEnterOrderID}
		l.lastErr.Set(err)
		l.mu.Unlock()
		return nil, err
	}
	cred, ok := l.creds.Credential()
	if !ok {
		err := notAuthenticated()
		l.lastErr.Set(err)
		l.mu.Unlock()
		return nil, err
	}
	l.seq++
	tag := l.seq
	l.loading.Set(true)
	l.lastErr.Set(nil)
	l.mu.Unlock()

	res, err := l.reader.GetStatus(ctx, cred.Token, customOrderID)

	l.mu.Lock()
	defer l.mu.Unlock()

	latest := tag == l.seq
	if latest {
		l.loading.Set(false)
	}
	if !latest || cred.Generation != l.creds.Generation() {
		logger.Log.Debugw("discarding stale status response", "custom_order_id", customOrderID, "seq", tag)
		return nil, ErrStaleResponse
	}

	switch {
	case err != nil && isNotFound(err), err == nil && res == nil:
		logger.Log.Infow("transaction not found", "custom_order_id", customOrderID)
		e := &apperr.NotFoundError{Message: msgNotFound}
		l.lastErr.Set(e)
		return nil, e
	case err != nil:
		logger.Log.Errorw("failed to fetch transaction status", "custom_order_id", customOrderID, "error", err)
		e := transient(err, msgStatusFailed)
		l.lastErr.Set(e)
		return nil, e
	}

	l.result.Set(res)
	return res, nil
}

// Reset clears the last result and error. A lookup still in flight is
// discarded when it completes.
func (l *StatusLookup) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.result.Set(nil)
	l.loading.Set(false)
	l.lastErr.Set(nil)
}

// Snapshot returns the current lookup state.
func (l *StatusLookup) Snapshot() StatusState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return StatusState{
		Result:  l.result.Get(),
		Loading: l.loading.Get(),
		Error:   apperr.Message(l.lastErr.Get()),
	}
}
