package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/query"
	"github.com/sbilibin2017/school-payments-console/internal/services"
)

//go:generate mockgen -source=dashboard.go -destination=dashboard_mock.go -package=handlers

// Dashboard is the filtered, paginated listing behind the dashboard page.
type Dashboard interface {
	Seed(rawQuery string) (bool, error)
	SetFilter(ctx context.Context, p query.Patch) error
	SetPage(ctx context.Context, n int) error
	Refresh(ctx context.Context) error
	Snapshot() services.ViewState
}

// Locator reports the address the dashboard filter is mirrored into.
type Locator interface {
	String() string
}

// DashboardResponse is the dashboard state plus its shareable address.
type DashboardResponse struct {
	services.ViewState
	Location string `json:"location"`
}

// PageRequest is the body of a page change.
type PageRequest struct {
	Page int `json:"page"`
}

// NewDashboardHandler returns the dashboard state. The first request seeds
// the filter from its own query string and runs the initial fetch.
func NewDashboardHandler(view Dashboard, loc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seeded, _ := view.Seed(r.URL.RawQuery)
		if seeded {
			if err := view.Refresh(r.Context()); err != nil && !errors.Is(err, services.ErrStaleResponse) {
				writeError(w, err)
				return
			}
		}
		writeDashboard(w, view, loc)
	}
}

// NewDashboardFilterHandler applies a filter patch and returns the new state.
func NewDashboardFilterHandler(view Dashboard, loc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p query.Patch
		if err := decodeBody(r, &p); err != nil {
			writeError(w, err)
			return
		}
		respond(w, view.SetFilter(r.Context(), p), view, loc)
	}
}

// NewDashboardPageHandler moves to the requested page and returns the new state.
func NewDashboardPageHandler(view Dashboard, loc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PageRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		respond(w, view.SetPage(r.Context(), req.Page), view, loc)
	}
}

// NewDashboardRefreshHandler re-runs the current query.
func NewDashboardRefreshHandler(view Dashboard, loc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, view.Refresh(r.Context()), view, loc)
	}
}

// respond renders the state for a superseded request, since the newer one
// owns it.
func respond(w http.ResponseWriter, err error, view Dashboard, loc Locator) {
	if err != nil && !errors.Is(err, services.ErrStaleResponse) {
		writeError(w, err)
		return
	}
	writeDashboard(w, view, loc)
}

func writeDashboard(w http.ResponseWriter, view Dashboard, loc Locator) {
	writeJSON(w, http.StatusOK, DashboardResponse{
		ViewState: view.Snapshot(),
		Location:  loc.String(),
	})
}
