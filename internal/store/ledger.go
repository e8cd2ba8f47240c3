package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

// balance transactions retry at most this many times before surfacing a
// conflict to the caller.
const balanceMaxAttempts = 3

type ledgerStore struct {
	Client    *firestore.Client
	Users     *firestore.CollectionRef
	Purchases *firestore.CollectionRef
	Expenses  *firestore.CollectionRef
	timeout   time.Duration
}

func NewLedgerStore(client *firestore.Client, timeout time.Duration) *ledgerStore {
	return &ledgerStore{
		Client:    client,
		Users:     client.Collection("users"),
		Purchases: client.Collection("purchases"),
		Expenses:  client.Collection("expenses"),
		timeout:   timeout,
	}
}

// AddPurchase credits the user's balance and appends the purchase row in one
// optimistic transaction; the write is conditioned on the balance read.
func (ls *ledgerStore) AddPurchase(ctx context.Context, purchase *models.Purchase) (int64, error) {
	row := ls.Purchases.NewDoc()
	return ls.applyBalanceChange(ctx, purchase.UserID, purchase.TokenAmount, row, purchase)
}

// AddExpense debits the balance and appends the expense row. No floor is
// applied; balances may go negative (observed upstream behavior, kept).
func (ls *ledgerStore) AddExpense(ctx context.Context, expense *models.Expense) (int64, error) {
	row := ls.Expenses.NewDoc()
	return ls.applyBalanceChange(ctx, expense.UserID, -expense.TokenAmount, row, expense)
}

func (ls *ledgerStore) applyBalanceChange(ctx context.Context, uid string, delta int64, row *firestore.DocumentRef, entry any) (int64, error) {
	ctx, cancel := withTimeout(ctx, ls.timeout)
	defer cancel()

	userRef := ls.Users.Doc(uid)
	var newBalance int64

	err := ls.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(userRef)
		if err != nil {
			if isNotFound(err) {
				return errs.NewNotFoundError("user not found")
			}
			return err
		}

		newBalance = currentBalance(snap) + delta

		if err := tx.Update(userRef, []firestore.Update{
			{Path: "availableTokens", Value: newBalance},
		}); err != nil {
			return err
		}
		return tx.Create(row, entry)
	}, firestore.MaxAttempts(balanceMaxAttempts))

	if err != nil {
		switch err.(type) {
		case *errs.NotFoundError:
			return 0, err
		}
		return 0, wrapFirestoreErr("ledger.balance", err)
	}
	return newBalance, nil
}

func currentBalance(snap *firestore.DocumentSnapshot) int64 {
	v, err := snap.DataAt("availableTokens")
	if err != nil {
		return 0
	}
	balance, _ := v.(int64)
	return balance
}

func (ls *ledgerStore) ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]*models.Expense, error) {
	ctx, cancel := withTimeout(ctx, ls.timeout)
	defer cancel()

	q := ls.Expenses.Query
	if filter.UserID != "" {
		q = q.Where("user_id", "==", filter.UserID)
	}
	if !filter.After.IsZero() {
		q = q.Where("expense_date", ">", filter.After)
	}
	q = q.OrderBy("expense_date", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	expenses := []*models.Expense{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapFirestoreErr("expenses.list", err)
		}

		var expense models.Expense
		if err := doc.DataTo(&expense); err != nil {
			return nil, errs.NewDatabaseError("expenses.list", err)
		}
		expenses = append(expenses, &expense)
	}
	return expenses, nil
}
