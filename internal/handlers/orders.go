package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harshbaid-13/Cake-Manager/internal/costing"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

// customRecipeSentinel is what the order form sends when no recipe backs the
// order; it is stored as a null reference.
const customRecipeSentinel = "custom"

type orderCreateRequest struct {
	CustomerName  string           `json:"customerName"`
	Description   string           `json:"description"`
	DueDate       string           `json:"dueDate"`
	QuotedPrice   decimal.Decimal  `json:"quotedPrice"`
	RecipeID      string           `json:"recipeId"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost"`
	Status        string           `json:"status"`
	IsPaid        bool             `json:"isPaid"`
}

type orderUpdateRequest struct {
	ID            string           `json:"id"`
	CustomerName  *string          `json:"customerName"`
	Description   *string          `json:"description"`
	DueDate       *string          `json:"dueDate"`
	QuotedPrice   *decimal.Decimal `json:"quotedPrice"`
	RecipeID      *string          `json:"recipeId"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost"`
	Status        *string          `json:"status"`
	IsPaid        *bool            `json:"isPaid"`
}

// OrderResource handles the /orders collection.
func OrderResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "order request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	switch r.Method {
	case http.MethodGet:
		listOrders(w, r)
	case http.MethodPost:
		createOrder(w, r)
	case http.MethodPatch:
		updateOrder(w, r)
	case http.MethodDelete:
		deleteOrder(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var orders []models.Order
	if err := database.WithContext(ctx).Find(&orders).Error; err != nil {
		applog.Error(ctx, "failed to list orders", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid order payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	status := payload.Status
	if strings.TrimSpace(status) == "" {
		status = models.StatusPending
	}

	recipeID := strings.TrimSpace(payload.RecipeID)

	// A recipe-backed order freezes the recipe's current cost; the client
	// supplied estimate only counts for custom orders.
	cost := decimal.Zero
	var recipeRef *string
	if recipeID != "" && recipeID != customRecipeSentinel {
		computed, err := costing.RecipeCost(ctx, database, recipeID)
		if err != nil {
			applog.Error(ctx, "failed to cost order recipe", "error", err, "recipeId", recipeID)
			writeJSONError(w, http.StatusInternalServerError, "unable to calculate recipe cost")
			return
		}
		cost = computed
		recipeRef = &recipeID
	} else if payload.EstimatedCost != nil {
		cost = *payload.EstimatedCost
	}

	order := models.Order{
		CustomerName:  payload.CustomerName,
		Description:   payload.Description,
		DueDate:       payload.DueDate,
		Status:        status,
		IsPaid:        payload.IsPaid,
		QuotedPrice:   payload.QuotedPrice,
		EstimatedCost: cost,
		RecipeID:      recipeRef,
	}

	if err := database.WithContext(ctx).Create(&order).Error; err != nil {
		applog.Error(ctx, "failed to create order", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create order")
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func updateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid order update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	updates := map[string]any{}
	if payload.CustomerName != nil {
		updates["customer_name"] = *payload.CustomerName
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.DueDate != nil {
		updates["due_date"] = *payload.DueDate
	}
	if payload.QuotedPrice != nil {
		updates["quoted_price"] = *payload.QuotedPrice
	}
	if payload.Status != nil {
		updates["status"] = *payload.Status
	}
	if payload.IsPaid != nil {
		updates["is_paid"] = *payload.IsPaid
	}

	if payload.RecipeID != nil {
		recipeID := strings.TrimSpace(*payload.RecipeID)
		if recipeID != "" && recipeID != customRecipeSentinel {
			computed, err := costing.RecipeCost(ctx, database, recipeID)
			if err != nil {
				applog.Error(ctx, "failed to cost order recipe", "error", err, "recipeId", recipeID)
				writeJSONError(w, http.StatusInternalServerError, "unable to calculate recipe cost")
				return
			}
			updates["recipe_id"] = recipeID
			updates["estimated_cost"] = computed
		} else {
			updates["recipe_id"] = nil
			if payload.EstimatedCost != nil {
				updates["estimated_cost"] = *payload.EstimatedCost
			}
		}
	} else if payload.EstimatedCost != nil {
		updates["estimated_cost"] = *payload.EstimatedCost
	}

	if len(updates) > 0 {
		result := database.WithContext(ctx).Model(&models.Order{}).Where("id = ?", payload.ID).Updates(updates)
		if result.Error != nil {
			applog.Error(ctx, "failed to update order", "error", result.Error, "id", payload.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update order")
			return
		}
		if result.RowsAffected == 0 {
			writeJSONError(w, http.StatusNotFound, "order not found")
			return
		}
	}

	var order models.Order
	if err := database.WithContext(ctx).First(&order, "id = ?", payload.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload order after update", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func deleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid order delete payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	if err := database.WithContext(ctx).Delete(&models.Order{}, "id = ?", payload.ID).Error; err != nil {
		applog.Error(ctx, "failed to delete order", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
