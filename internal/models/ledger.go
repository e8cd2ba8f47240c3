package models

import (
	"time"
)

// Purchase and Expense rows are append-only; the running balance lives on the
// user document and is updated in the same transaction that appends the row.

type Purchase struct {
	PaymentMethod string    `firestore:"payment_method" json:"payment_method"`
	PurchaseDate  time.Time `firestore:"purchase_date" json:"purchase_date"`
	TokenAmount   int64     `firestore:"token_amount" json:"token_amount"`
	UserID        string    `firestore:"user_id" json:"user_id"`
}

type Expense struct {
	ExpenseDate time.Time `firestore:"expense_date" json:"expense_date"`
	ImageID     string    `firestore:"image_id" json:"image_id"`
	TokenAmount int64     `firestore:"token_amount" json:"token_amount"`
	UserID      string    `firestore:"user_id" json:"user_id"`
}
