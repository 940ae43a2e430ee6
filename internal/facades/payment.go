package facades

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/school-payments-console/internal/models"
)

// PaymentHTTPFacade submits create-payment commands.
type PaymentHTTPFacade struct {
	client *Client
}

// NewPaymentHTTPFacade creates a new facade over client.
func NewPaymentHTTPFacade(client *Client) *PaymentHTTPFacade {
	return &PaymentHTTPFacade{client: client}
}

// CreatePayment submits req and returns the server's acknowledgement.
func (f *PaymentHTTPFacade) CreatePayment(ctx context.Context, token string, req models.PaymentRequest) (*models.PaymentAck, error) {
	var ack models.PaymentAck
	if err := f.client.do(ctx, http.MethodPost, "/payment/create-payment", nil, token, req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
