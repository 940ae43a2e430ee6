package models

import "time"

// PaymentRequest is the create-payment form. Amount is kept as typed so the
// form can be handed back unchanged after a failed submission.
type PaymentRequest struct {
	SchoolID    string      `json:"school_id" validate:"required"`
	Amount      string      `json:"amount" validate:"required"`
	CallbackURL string      `json:"callback_url" validate:"required,url"`
	StudentInfo StudentInfo `json:"student_info"`
}

// PaymentAck is the collaborator's acknowledgement of a created payment.
type PaymentAck struct {
	CustomOrderID    string `json:"custom_order_id"`
	CollectRequestID string `json:"collect_request_id"`
	PaymentURL       string `json:"payment_url,omitempty"`
}

// PaymentEvent is published after a payment request is accepted.
type PaymentEvent struct {
	EventID          string    `json:"event_id"`
	CustomOrderID    string    `json:"custom_order_id"`
	CollectRequestID string    `json:"collect_request_id"`
	SchoolID         string    `json:"school_id"`
	Amount           string    `json:"amount"`
	StudentID        string    `json:"student_id"`
	Timestamp        time.Time `json:"timestamp"`
}
