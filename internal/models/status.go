package models

// StatusLookupResult is the outcome of one status lookup by custom order id.
type StatusLookupResult struct {
	Transaction
	PaymentMessage *string `json:"payment_message,omitempty"`
	ErrorMessage   *string `json:"error_message,omitempty"`
}
