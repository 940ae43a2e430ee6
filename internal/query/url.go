package query

import (
	"errors"
	"net/url"
	"sync"

	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/state"
)

// Query parameter names mirrored from the filter.
const (
	ParamStatus   = "status"
	ParamSchoolID = "school_id"
	ParamSort     = "sort"
)

// Encode projects f onto a query string. Absent fields are omitted and keys
// appear in sorted order.
func Encode(f Filter) string {
	f = f.Normalize()
	v := url.Values{}
	if f.Status != nil {
		v.Set(ParamStatus, string(*f.Status))
	}
	if f.SchoolID != nil {
		v.Set(ParamSchoolID, *f.SchoolID)
	}
	if f.Sort != nil {
		v.Set(ParamSort, string(*f.Sort))
	}
	return v.Encode()
}

// Decode builds a filter from a raw query string. Empty parameters are
// treated as absent, unknown parameters are ignored. Invalid status or sort
// values are left out of the returned filter and reported in the error.
func Decode(rawQuery string) (Filter, error) {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Filter{}, &apperr.ValidationError{Message: "malformed query string"}
	}

	var (
		f    Filter
		errs []error
	)

	if raw := v.Get(ParamStatus); raw != "" {
		s := models.Status(raw)
		if s.Filterable() {
			f.Status = &s
		} else {
			errs = append(errs, &apperr.ValidationError{Field: ParamStatus, Message: "unsupported status " + raw})
		}
	}
	if raw := v.Get(ParamSchoolID); raw != "" {
		f.SchoolID = &raw
	}
	if raw := v.Get(ParamSort); raw != "" {
		k := SortKey(raw)
		if k.Valid() {
			f.Sort = &k
		} else {
			errs = append(errs, &apperr.ValidationError{Field: ParamSort, Message: "unsupported sort key " + raw})
		}
	}

	return f, errors.Join(errs...)
}

// Location is the navigable address the filter is mirrored into.
type Location interface {
	ReplaceQuery(rawQuery string)
}

// BindURL mirrors every value of filter into loc, starting with the current
// one. It never reads loc back.
func BindURL(filter *state.Cell[Filter], loc Location) (unbind func()) {
	loc.ReplaceQuery(Encode(filter.Get()))
	return filter.Subscribe(func(f Filter) {
		loc.ReplaceQuery(Encode(f))
	})
}

// MemoryLocation is a Location kept in memory, addressed by a fixed path.
type MemoryLocation struct {
	mu       sync.RWMutex
	path     string
	rawQuery string
}

// NewMemoryLocation creates a location for path with an empty query.
func NewMemoryLocation(path string) *MemoryLocation {
	return &MemoryLocation{path: path}
}

// ReplaceQuery implements Location.
func (l *MemoryLocation) ReplaceQuery(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rawQuery = rawQuery
}

// RawQuery returns the current query string.
func (l *MemoryLocation) RawQuery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rawQuery
}

// String returns path and query as a relative URL.
func (l *MemoryLocation) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.rawQuery == "" {
		return l.path
	}
	return l.path + "?" + l.rawQuery
}
