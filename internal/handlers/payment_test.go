package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultForm = models.PaymentRequest{SchoolID: "65b0e6293e9f76a9694d84b4", CallbackURL: "https://google.com"}

func TestGetPaymentFormHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockPaymentForm(ctrl)
	svc.EXPECT().Snapshot().Return(services.PaymentState{Form: defaultForm})

	w := httptest.NewRecorder()
	NewGetPaymentFormHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/create-payment", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var st services.PaymentState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, defaultForm, st.Form)
}

func TestUpdatePaymentFormHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	form := defaultForm
	form.Amount = "1500"
	svc := NewMockPaymentForm(ctrl)
	svc.EXPECT().Update(form)
	svc.EXPECT().Snapshot().Return(services.PaymentState{Form: form})

	body, _ := json.Marshal(form)
	w := httptest.NewRecorder()
	NewUpdatePaymentFormHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/create-payment", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePaymentFormHandler_BadBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockPaymentForm(ctrl)
	w := httptest.NewRecorder()
	NewUpdatePaymentFormHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/create-payment", bytes.NewBufferString("[")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitPaymentHandler(t *testing.T) {
	ack := &models.PaymentAck{CustomOrderID: "ORD-7", CollectRequestID: "COL-7", PaymentURL: "https://pay.example/7"}

	tests := []struct {
		name         string
		mockSetup    func(m *MockPaymentForm)
		expectedCode int
	}{
		{
			name: "created",
			mockSetup: func(m *MockPaymentForm) {
				m.EXPECT().Submit(gomock.Any()).Return(ack, nil)
				m.EXPECT().Snapshot().Return(services.PaymentState{Form: defaultForm, Ack: ack})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "zero amount",
			mockSetup: func(m *MockPaymentForm) {
				m.EXPECT().Submit(gomock.Any()).
					Return(nil, &apperr.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "collaborator failure",
			mockSetup: func(m *MockPaymentForm) {
				m.EXPECT().Submit(gomock.Any()).
					Return(nil, &apperr.TransientNetworkError{Message: "Failed to create payment request"})
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name: "superseded by session change",
			mockSetup: func(m *MockPaymentForm) {
				m.EXPECT().Submit(gomock.Any()).Return(nil, services.ErrStaleResponse)
				m.EXPECT().Snapshot().Return(services.PaymentState{Form: defaultForm})
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockPaymentForm(ctrl)
			tt.mockSetup(svc)

			w := httptest.NewRecorder()
			NewSubmitPaymentHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create-payment", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var st services.PaymentState
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
				require.NotNil(t, st.Ack)
				assert.Equal(t, "https://pay.example/7", st.Ack.PaymentURL)
			}
		})
	}
}

func TestResetPaymentFormHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockPaymentForm(ctrl)
	gomock.InOrder(
		svc.EXPECT().Reset(),
		svc.EXPECT().Snapshot().Return(services.PaymentState{Form: defaultForm}),
	)

	w := httptest.NewRecorder()
	NewResetPaymentFormHandler(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/create-payment", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
