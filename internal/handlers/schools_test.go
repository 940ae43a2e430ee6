package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSchoolTransactionsHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockSchoolPager)
		expectedCode int
	}{
		{
			name:   "default page",
			target: "/transactions/school/s1",
			mockSetup: func(m *MockSchoolPager) {
				m.EXPECT().Page(gomock.Any(), "s1", 1).Return(services.ViewState{
					Pagination: models.Pagination{Page: 1, Limit: 10, Total: 4, Pages: 1},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "explicit page",
			target: "/transactions/school/s1?page=3",
			mockSetup: func(m *MockSchoolPager) {
				m.EXPECT().Page(gomock.Any(), "s1", 3).Return(services.ViewState{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "page not a number",
			target:       "/transactions/school/s1?page=two",
			mockSetup:    func(m *MockSchoolPager) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "page out of range",
			target: "/transactions/school/s1?page=0",
			mockSetup: func(m *MockSchoolPager) {
				m.EXPECT().Page(gomock.Any(), "s1", 0).
					Return(services.ViewState{}, &apperr.ValidationError{Field: "page", Message: "page must be at least 1"})
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "upstream failure",
			target: "/transactions/school/s1",
			mockSetup: func(m *MockSchoolPager) {
				m.EXPECT().Page(gomock.Any(), "s1", 1).
					Return(services.ViewState{}, &apperr.TransientNetworkError{Message: "Failed to fetch transactions"})
			},
			expectedCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pager := NewMockSchoolPager(ctrl)
			tt.mockSetup(pager)

			r := chi.NewRouter()
			r.Get("/transactions/school/{schoolId}", NewSchoolTransactionsHandler(pager))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
