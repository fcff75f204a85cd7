package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

type ingredientCreateRequest struct {
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	UnitSize     string          `json:"unitSize"`
}

type ingredientUpdateRequest struct {
	ID           string           `json:"id"`
	Name         *string          `json:"name"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	UnitSize     *string          `json:"unitSize"`
}

// IngredientResource handles the /ingredients collection.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "ingredient request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	switch r.Method {
	case http.MethodGet:
		listIngredients(w, r)
	case http.MethodPost:
		createIngredient(w, r)
	case http.MethodPatch:
		updateIngredient(w, r)
	case http.MethodDelete:
		deleteIngredient(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var ingredients []models.Ingredient
	if err := database.WithContext(ctx).Find(&ingredients).Error; err != nil {
		applog.Error(ctx, "failed to list ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredients")
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload ingredientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ingredient := models.Ingredient{
		Name:         payload.Name,
		PricePerUnit: payload.PricePerUnit,
		UnitSize:     payload.UnitSize,
	}

	if err := database.WithContext(ctx).Create(&ingredient).Error; err != nil {
		applog.Error(ctx, "failed to create ingredient", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, ingredient)
}

func updateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload ingredientUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	var ingredient models.Ingredient
	if err := database.WithContext(ctx).First(&ingredient, "id = ?", payload.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient for update", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.PricePerUnit != nil {
		updates["price_per_unit"] = *payload.PricePerUnit
	}
	if payload.UnitSize != nil {
		updates["unit_size"] = *payload.UnitSize
	}

	if len(updates) > 0 {
		if err := database.WithContext(ctx).Model(&ingredient).Updates(updates).Error; err != nil {
			applog.Error(ctx, "failed to update ingredient", "error", err, "id", payload.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update ingredient")
			return
		}
	}

	writeJSON(w, http.StatusOK, ingredient)
}

func deleteIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient delete payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	// Cascade by hand: the store is not trusted to carry FK cascade rules.
	if err := database.WithContext(ctx).Where("ingredient_id = ?", payload.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		applog.Error(ctx, "failed to delete ingredient links", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete ingredient")
		return
	}
	if err := database.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", payload.ID).Error; err != nil {
		applog.Error(ctx, "failed to delete ingredient", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete ingredient")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
