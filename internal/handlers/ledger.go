package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/amirhodzic/snapvision-backend/internal/dto"
	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/internal/middleware"
	"github.com/amirhodzic/snapvision-backend/internal/models"
	"github.com/amirhodzic/snapvision-backend/internal/response"
)

type LedgerService interface {
	AddPurchase(ctx context.Context, userID string, amount int64, method string) (int64, error)
	AddExpense(ctx context.Context, userID string, amount int64, imageID string) (int64, error)
	ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]*models.Expense, error)
}

type ledgerHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       LedgerService
}

func NewLedgerHandlers(deps *Deps) *ledgerHandlers {
	return &ledgerHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
	}
}

// AddPurchase credits the authenticated caller; user ids in the body are
// ignored on purpose.
func (h *ledgerHandlers) AddPurchase(w http.ResponseWriter, r *http.Request) {
	var body dto.AddPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	uid := middleware.UID(r.Context())
	newBalance, err := h.LedgerSvc.AddPurchase(r.Context(), uid, body.TokenAmount, body.PaymentMethod)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.BalanceResult{AvailableTokens: newBalance})
}

func (h *ledgerHandlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	var body dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid JSON payload"))
		return
	}

	uid := middleware.UID(r.Context())
	newBalance, err := h.LedgerSvc.AddExpense(r.Context(), uid, body.TokenAmount, body.ImageID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.BalanceResult{AvailableTokens: newBalance})
}

func (h *ledgerHandlers) GetExpenses(w http.ResponseWriter, r *http.Request) {
	filter := dto.ExpenseFilter{
		UserID: r.URL.Query().Get("user_id"),
	}

	if raw := r.URL.Query().Get("expense_date"); raw != "" {
		after, err := parseExpenseDate(raw)
		if err != nil {
			h.ResponseHandler.HandleError(w, r,
				errs.NewValidationError("expense_date must be RFC3339 or YYYY-MM-DD"))
			return
		}
		filter.After = after
	}

	expenses, err := h.LedgerSvc.ListExpenses(r.Context(), filter)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, expenses)
}

func parseExpenseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
