// Package query holds the listing predicate and its URL projection.
package query

import (
	"errors"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
)

// SortKey names a sort field and direction; a leading "-" means descending.
type SortKey string

const (
	SortNewest          SortKey = "-createdAt"
	SortOldest          SortKey = "createdAt"
	SortLatestPayment   SortKey = "-payment_time"
	SortEarliestPayment SortKey = "payment_time"
	SortHighestAmount   SortKey = "-order_amount"
	SortLowestAmount    SortKey = "order_amount"
)

// DefaultSort is sent to the server when a filter carries no sort.
const DefaultSort = SortNewest

// SortKeys is the fixed set of accepted sort keys.
var SortKeys = []SortKey{
	SortNewest, SortOldest,
	SortLatestPayment, SortEarliestPayment,
	SortHighestAmount, SortLowestAmount,
}

// Valid reports whether k is one of SortKeys.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Filter is the active listing predicate. A nil field means no constraint.
type Filter struct {
	Status   *models.Status `json:"status,omitempty"`
	SchoolID *string        `json:"school_id,omitempty"`
	Sort     *SortKey       `json:"sort,omitempty"`
}

// Normalize drops fields that are present but empty.
func (f Filter) Normalize() Filter {
	if f.Status != nil && *f.Status == "" {
		f.Status = nil
	}
	if f.SchoolID != nil && *f.SchoolID == "" {
		f.SchoolID = nil
	}
	if f.Sort != nil && *f.Sort == "" {
		f.Sort = nil
	}
	return f
}

// Validate rejects statuses and sort keys outside the supported sets.
func (f Filter) Validate() error {
	var errs []error
	if f.Status != nil && !f.Status.Filterable() {
		errs = append(errs, &apperr.ValidationError{Field: ParamStatus, Message: "unsupported status " + string(*f.Status)})
	}
	if f.Sort != nil && !f.Sort.Valid() {
		errs = append(errs, &apperr.ValidationError{Field: ParamSort, Message: "unsupported sort key " + string(*f.Sort)})
	}
	return errors.Join(errs...)
}

// EffectiveSort returns the sort to send to the server.
func (f Filter) EffectiveSort() SortKey {
	if f.Sort == nil {
		return DefaultSort
	}
	return *f.Sort
}

// Patch is a partial filter edit. A nil field leaves the current value, an
// empty string clears it.
type Patch struct {
	Status   *string `json:"status,omitempty"`
	SchoolID *string `json:"school_id,omitempty"`
	Sort     *string `json:"sort,omitempty"`
}

// Merge applies p to f. The result is normalized and validated; on error f is
// returned unchanged.
func (f Filter) Merge(p Patch) (Filter, error) {
	next := f
	if p.Status != nil {
		s := models.Status(*p.Status)
		next.Status = &s
	}
	if p.SchoolID != nil {
		id := *p.SchoolID
		next.SchoolID = &id
	}
	if p.Sort != nil {
		k := SortKey(*p.Sort)
		next.Sort = &k
	}
	next = next.Normalize()
	if err := next.Validate(); err != nil {
		return f, err
	}
	return next, nil
}

// ListQuery combines the filter with a page request.
func (f Filter) ListQuery(page, limit int) models.ListQuery {
	return models.ListQuery{
		Page:     page,
		Limit:    limit,
		Sort:     string(f.EffectiveSort()),
		Status:   f.Status,
		SchoolID: f.SchoolID,
	}
}
