package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/state"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=services

// PaymentCreator submits create-payment commands to the collaborator.
type PaymentCreator interface {
	CreatePayment(ctx context.Context, token string, req models.PaymentRequest) (*models.PaymentAck, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// PaymentState is a snapshot of the payment form flow.
type PaymentState struct {
	Form       models.PaymentRequest `json:"form"`
	Ack        *models.PaymentAck    `json:"ack,omitempty"`
	Submitting bool                  `json:"submitting"`
	Error      string                `json:"error,omitempty"`
}

// PaymentSubmitter owns the create-payment form. The form is never cleared
// implicitly; only Reset restores the defaults.
type PaymentSubmitter struct {
	creator     PaymentCreator
	creds       CredentialSource
	kafkaWriter KafkaWriter
	validate    *validator.Validate
	defaults    models.PaymentRequest

	mu         sync.Mutex
	submitting bool
	form       *state.Cell[models.PaymentRequest]
	ack        *state.Cell[*models.PaymentAck]
	lastErr    *state.Cell[error]
}

// NewPaymentSubmitter creates a submitter whose form starts at defaults.
// kafkaWriter may be nil, in which case no events are published.
func NewPaymentSubmitter(creator PaymentCreator, creds CredentialSource, kafkaWriter KafkaWriter, defaults models.PaymentRequest) *PaymentSubmitter {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PaymentSubmitter{
		creator:     creator,
		creds:       creds,
		kafkaWriter: kafkaWriter,
		validate:    v,
		defaults:    defaults,
		form:        state.NewCell(defaults),
		ack:         state.NewCell[*models.PaymentAck](nil),
		lastErr:     state.NewCell[error](nil),
	}
}

// Update replaces the form.
func (p *PaymentSubmitter) Update(form models.PaymentRequest) {
	p.form.Set(form)
}

// Reset restores the default form and clears the last outcome.
func (p *PaymentSubmitter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Set(p.defaults)
	p.ack.Set(nil)
	p.lastErr.Set(nil)
}

// Snapshot returns the current form and outcome.
func (p *PaymentSubmitter) Snapshot() PaymentState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PaymentState{
		Form:       p.form.Get(),
		Ack:        p.ack.Get(),
		Submitting: p.submitting,
		Error:      apperr.Message(p.lastErr.Get()),
	}
}

// Submit validates the current form and sends it. Opening the returned
// payment URL is left to the caller. A reply arriving after the session
// changed is discarded with ErrStaleResponse.
func (p *PaymentSubmitter) Submit(ctx context.Context) (*models.PaymentAck, error) {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return nil, &apperr.ValidationError{Message: msgSubmitInFlight}
	}
	form := p.form.Get()
	req, err := p.check(form)
	if err != nil {
		p.lastErr.Set(err)
		p.mu.Unlock()
		return nil, err
	}
	cred, ok := p.creds.Credential()
	if !ok {
		err := notAuthenticated()
		p.lastErr.Set(err)
		p.mu.Unlock()
		return nil, err
	}
	p.submitting = true
	p.ack.Set(nil)
	p.lastErr.Set(nil)
	p.mu.Unlock()

	ack, err := p.creator.CreatePayment(ctx, cred.Token, req)

	p.mu.Lock()
	p.submitting = false
	if cred.Generation != p.creds.Generation() {
		p.mu.Unlock()
		logger.Log.Debugw("discarding payment response from a previous session", "school_id", req.SchoolID, "error", err)
		return nil, ErrStaleResponse
	}
	if err != nil {
		e := transient(err, msgPaymentFailed)
		p.lastErr.Set(e)
		p.mu.Unlock()
		logger.Log.Errorw("failed to create payment request", "school_id", req.SchoolID, "amount", req.Amount, "error", err)
		return nil, e
	}
	if ack == nil {
		ack = &models.PaymentAck{}
	}
	p.ack.Set(ack)
	p.mu.Unlock()

	logger.Log.Infow("payment request created",
		"custom_order_id", ack.CustomOrderID,
		"collect_request_id", ack.CollectRequestID,
		"has_payment_url", ack.PaymentURL != "",
	)
	p.publishPayment(ctx, req, ack)
	return ack, nil
}

// check validates form and returns the request to send.
func (p *PaymentSubmitter) check(form models.PaymentRequest) (models.PaymentRequest, error) {
	if err := p.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return form, fieldError(verrs[0])
		}
		return form, &apperr.ValidationError{Message: err.Error()}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil {
		return form, &apperr.ValidationError{Field: "amount", Message: "amount must be a number"}
	}
	if !amount.IsPositive() {
		return form, &apperr.ValidationError{Field: "amount", Message: "amount must be greater than 0"}
	}

	req := form
	req.Amount = amount.String()
	return req, nil
}

func fieldError(fe validator.FieldError) error {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + " is required"
	case "email":
		msg = fe.Field() + " must be a valid email"
	case "url":
		msg = fe.Field() + " must be a valid URL"
	default:
		msg = fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	return &apperr.ValidationError{Field: fe.Field(), Message: msg}
}

// publishPayment publishes an accepted payment request to Kafka.
func (p *PaymentSubmitter) publishPayment(ctx context.Context, req models.PaymentRequest, ack *models.PaymentAck) {
	if p.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "custom_order_id", ack.CustomOrderID)
		return
	}

	event := models.PaymentEvent{
		EventID:          uuid.NewString(),
		CustomOrderID:    ack.CustomOrderID,
		CollectRequestID: ack.CollectRequestID,
		SchoolID:         req.SchoolID,
		Amount:           req.Amount,
		StudentID:        req.StudentInfo.ID,
		Timestamp:        time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal payment event for Kafka", "custom_order_id", ack.CustomOrderID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(ack.CustomOrderID),
		Value: data,
	}
	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish payment event to Kafka", "custom_order_id", ack.CustomOrderID, "error", err)
		return
	}
	logger.Log.Infow("Payment event published to Kafka", "custom_order_id", ack.CustomOrderID)
}
