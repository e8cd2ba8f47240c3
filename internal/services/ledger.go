package services

import (
	"context"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

type ledgerLSStore interface {
	AddPurchase(ctx context.Context, purchase *models.Purchase) (int64, error)
	AddExpense(ctx context.Context, expense *models.Expense) (int64, error)
	ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]*models.Expense, error)
}

type ledgerService struct {
	ledger   ledgerLSStore
	clockNow func() time.Time
}

func NewLedgerService(ledger ledgerLSStore) *ledgerService {
	return &ledgerService{
		ledger:   ledger,
		clockNow: time.Now,
	}
}

func (s *ledgerService) AddPurchase(ctx context.Context, userID string, amount int64, method string) (int64, error) {
	if amount <= 0 {
		return 0, errs.NewValidationError("token_amount must be positive")
	}
	if method == "" {
		return 0, errs.NewValidationError("payment_method is required")
	}

	purchase := &models.Purchase{
		PaymentMethod: method,
		PurchaseDate:  s.clockNow().UTC(),
		TokenAmount:   amount,
		UserID:        userID,
	}
	newBalance, err := s.ledger.AddPurchase(ctx, purchase)
	if err != nil {
		return 0, err
	}

	log := logger.FromContext(ctx)
	log.Info("purchase recorded", "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// AddExpense debits the balance; there is no floor at zero, so a balance can
// go negative.
func (s *ledgerService) AddExpense(ctx context.Context, userID string, amount int64, imageID string) (int64, error) {
	if amount <= 0 {
		return 0, errs.NewValidationError("token_amount must be positive")
	}
	if imageID == "" {
		return 0, errs.NewValidationError("image_id is required")
	}

	expense := &models.Expense{
		ExpenseDate: s.clockNow().UTC(),
		ImageID:     imageID,
		TokenAmount: amount,
		UserID:      userID,
	}
	newBalance, err := s.ledger.AddExpense(ctx, expense)
	if err != nil {
		return 0, err
	}

	log := logger.FromContext(ctx)
	log.Info("expense recorded", "amount", amount, "balance", newBalance)
	return newBalance, nil
}

func (s *ledgerService) ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]*models.Expense, error) {
	return s.ledger.ListExpenses(ctx, filter)
}
