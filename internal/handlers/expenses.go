package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

type expenseCreateRequest struct {
	ItemName string          `json:"itemName"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// ExpenseResource handles the /expenses collection.
func ExpenseResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "expense request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	switch r.Method {
	case http.MethodGet:
		listExpenses(w, r)
	case http.MethodPost:
		createExpense(w, r)
	case http.MethodDelete:
		deleteExpense(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var expenses []models.Expense
	if err := database.WithContext(ctx).Find(&expenses).Error; err != nil {
		applog.Error(ctx, "failed to list expenses", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load expenses")
		return
	}

	// Most recent first, decided at return time rather than in the query.
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})

	writeJSON(w, http.StatusOK, expenses)
}

func createExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload expenseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid expense payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	date := strings.TrimSpace(payload.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	expense := models.Expense{
		ItemName: payload.ItemName,
		Amount:   payload.Amount,
		Category: payload.Category,
		Date:     date,
	}

	if err := database.WithContext(ctx).Create(&expense).Error; err != nil {
		applog.Error(ctx, "failed to create expense", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func deleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid expense delete payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	if err := database.WithContext(ctx).Delete(&models.Expense{}, "id = ?", payload.ID).Error; err != nil {
		applog.Error(ctx, "failed to delete expense", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
