package dto

import (
	"time"
)

type AddPurchaseRequest struct {
	PaymentMethod string `json:"payment_method"`
	TokenAmount   int64  `json:"token_amount"`
}

type AddExpenseRequest struct {
	ImageID     string `json:"image_id"`
	TokenAmount int64  `json:"token_amount"`
}

type BalanceResult struct {
	AvailableTokens int64 `json:"availableTokens"`
}

// ExpenseFilter criteria are optional; zero values mean "no filter".
// After is an exclusive lower bound on expense_date.
type ExpenseFilter struct {
	UserID string
	After  time.Time
}
