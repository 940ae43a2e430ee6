package services

import (
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/shopspring/decimal"
)

// Aggregate folds the displayed page into its summary. It only sees the
// transactions it is given, never the full server side matching set.
// Missing amounts count as zero.
func Aggregate(txs []models.Transaction) models.Summary {
	s := models.Summary{
		TotalAmount:      decimal.Zero,
		SuccessfulAmount: decimal.Zero,
	}
	for _, tx := range txs {
		amount := tx.OrderAmountOrZero()
		s.TotalAmount = s.TotalAmount.Add(amount)

		switch tx.Status {
		case models.StatusSuccess:
			s.SuccessfulAmount = s.SuccessfulAmount.Add(amount)
			s.SuccessCount++
		case models.StatusPending, models.StatusInitiated:
			s.PendingCount++
		case models.StatusFailed:
			s.FailedCount++
		}
	}
	return s
}
