package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/internal/costing"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
	"github.com/harshbaid-13/Cake-Manager/models"
)

type recipeLinkInput struct {
	IngredientID string          `json:"ingredientId"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
}

type recipeCreateRequest struct {
	Name         string            `json:"name"`
	BaseOverhead decimal.Decimal   `json:"baseOverhead"`
	Ingredients  []recipeLinkInput `json:"ingredients"`
}

type recipeUpdateRequest struct {
	ID           string             `json:"id"`
	Name         *string            `json:"name"`
	BaseOverhead *decimal.Decimal   `json:"baseOverhead"`
	Ingredients  *[]recipeLinkInput `json:"ingredients"`
}

type recipeLinkView struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredientId"`
	IngredientName string          `json:"ingredientName"`
	QuantityUsed   decimal.Decimal `json:"quantityUsed"`
}

type recipeResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	BaseOverhead   decimal.Decimal  `json:"baseOverhead"`
	CalculatedCost float64          `json:"calculatedCost"`
	Ingredients    []recipeLinkView `json:"ingredients"`
}

// RecipeResource handles the /recipes collection.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "recipe request without database")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	switch r.Method {
	case http.MethodGet:
		listRecipes(w, r)
	case http.MethodPost:
		createRecipe(w, r)
	case http.MethodPatch:
		updateRecipe(w, r)
	case http.MethodDelete:
		deleteRecipe(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var recipes []models.Recipe
	if err := database.WithContext(ctx).Find(&recipes).Error; err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response, err := projectRecipe(ctx, recipe)
		if err != nil {
			applog.Error(ctx, "failed to annotate recipe", "error", err, "id", recipe.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
			return
		}
		responses = append(responses, response)
	}

	writeJSON(w, http.StatusOK, responses)
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload recipeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	recipe := models.Recipe{
		Name:         payload.Name,
		BaseOverhead: payload.BaseOverhead,
	}
	if err := database.WithContext(ctx).Create(&recipe).Error; err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create recipe")
		return
	}

	if err := insertRecipeLinks(ctx, recipe.ID, payload.Ingredients); err != nil {
		applog.Error(ctx, "failed to create recipe ingredients", "error", err, "id", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to create recipe ingredients")
		return
	}

	response, err := projectRecipe(ctx, recipe)
	if err != nil {
		applog.Error(ctx, "failed to annotate recipe", "error", err, "id", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func updateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload recipeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	var recipe models.Recipe
	if err := database.WithContext(ctx).First(&recipe, "id = ?", payload.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "recipe not found")
			return
		}
		applog.Error(ctx, "failed to load recipe for update", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.BaseOverhead != nil {
		updates["base_overhead"] = *payload.BaseOverhead
	}
	if len(updates) > 0 {
		if err := database.WithContext(ctx).Model(&recipe).Updates(updates).Error; err != nil {
			applog.Error(ctx, "failed to update recipe", "error", err, "id", payload.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
			return
		}
	}

	// A supplied ingredient list, even an empty one, replaces the existing
	// links wholesale. No diffing.
	if payload.Ingredients != nil {
		if err := database.WithContext(ctx).Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			applog.Error(ctx, "failed to clear recipe ingredients", "error", err, "id", recipe.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update recipe ingredients")
			return
		}
		if err := insertRecipeLinks(ctx, recipe.ID, *payload.Ingredients); err != nil {
			applog.Error(ctx, "failed to replace recipe ingredients", "error", err, "id", recipe.ID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update recipe ingredients")
			return
		}
	}

	response, err := projectRecipe(ctx, recipe)
	if err != nil {
		applog.Error(ctx, "failed to annotate recipe", "error", err, "id", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func deleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe delete payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ID) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	// Explicit cascade: drop the links, clear order references, then the
	// recipe itself.
	if err := database.WithContext(ctx).Where("recipe_id = ?", payload.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		applog.Error(ctx, "failed to delete recipe ingredients", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	if err := database.WithContext(ctx).Model(&models.Order{}).Where("recipe_id = ?", payload.ID).Update("recipe_id", nil).Error; err != nil {
		applog.Error(ctx, "failed to clear order recipe references", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	if err := database.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", payload.ID).Error; err != nil {
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", payload.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func insertRecipeLinks(ctx context.Context, recipeID string, items []recipeLinkInput) error {
	for _, item := range items {
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			QuantityUsed: item.QuantityUsed,
		}
		if err := database.WithContext(ctx).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func projectRecipe(ctx context.Context, recipe models.Recipe) (recipeResponse, error) {
	var links []models.RecipeIngredient
	if err := database.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipe.ID).
		Find(&links).Error; err != nil {
		return recipeResponse{}, err
	}

	cost, err := costing.RecipeCost(ctx, database, recipe.ID)
	if err != nil {
		return recipeResponse{}, err
	}

	views := make([]recipeLinkView, 0, len(links))
	for _, link := range links {
		view := recipeLinkView{
			ID:           link.ID,
			IngredientID: link.IngredientID,
			QuantityUsed: link.QuantityUsed,
		}
		if link.Ingredient != nil {
			view.IngredientName = link.Ingredient.Name
		}
		views = append(views, view)
	}

	rounded, _ := cost.Round(2).Float64()
	return recipeResponse{
		ID:             recipe.ID,
		Name:           recipe.Name,
		BaseOverhead:   recipe.BaseOverhead,
		CalculatedCost: rounded,
		Ingredients:    views,
	}, nil
}
