package models

import "github.com/shopspring/decimal"

// DefaultPageLimit is the page size used when none is configured.
const DefaultPageLimit = 10

// Pagination is the requested page/limit and the server reported total/pages.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListQuery is one list request as sent to the collaborator.
type ListQuery struct {
	Page     int
	Limit    int
	Sort     string
	Status   *Status
	SchoolID *string
}

// ListResponse is the collaborator's list reply.
type ListResponse struct {
	Data       []Transaction `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// Summary is a page-local fold over the displayed transactions.
type Summary struct {
	TotalAmount      decimal.Decimal `json:"total_amount"`
	SuccessfulAmount decimal.Decimal `json:"successful_amount"`
	SuccessCount     int             `json:"success_count"`
	PendingCount     int             `json:"pending_count"`
	FailedCount      int             `json:"failed_count"`
}
