package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/harshbaid-13/Cake-Manager/models"
)

func TestIngredientCreateAndList(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	body := bytes.NewBufferString(`{"name":"Almond Flour","pricePerUnit":"850.00","unitSize":"1 kg"}`)
	req := httptest.NewRequest(http.MethodPost, "/ingredients", body)
	w := httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/ingredients", nil)
	w = httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listed []models.Ingredient
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Almond Flour" {
		t.Fatalf("unexpected list: %+v", listed)
	}
}

func TestIngredientPartialUpdate(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	ingredient := models.Ingredient{Name: "Butter", PricePerUnit: mustDecimal(t, "500"), UnitSize: "1 kg"}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	body := bytes.NewBufferString(`{"id":"` + ingredient.ID + `","pricePerUnit":"540.00"}`)
	req := httptest.NewRequest(http.MethodPatch, "/ingredients", body)
	w := httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Ingredient
	if err := db.First(&updated, "id = ?", ingredient.ID).Error; err != nil {
		t.Fatalf("reload ingredient: %v", err)
	}
	if !updated.PricePerUnit.Equal(mustDecimal(t, "540.00")) {
		t.Fatalf("pricePerUnit = %s, want 540.00", updated.PricePerUnit)
	}
	if updated.Name != "Butter" || updated.UnitSize != "1 kg" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestIngredientUpdateRequiresID(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPatch, "/ingredients", bytes.NewBufferString(`{"name":"x"}`))
	w := httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestIngredientUpdateUnknownIDReturnsNotFound(t *testing.T) {
	_, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	body := bytes.NewBufferString(`{"id":"00000000-0000-0000-0000-000000000000","name":"x"}`)
	req := httptest.NewRequest(http.MethodPatch, "/ingredients", body)
	w := httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestIngredientDeleteCascadesToRecipeLinks(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	t.Cleanup(cleanup)

	ingredient := models.Ingredient{Name: "Cocoa", PricePerUnit: mustDecimal(t, "320"), UnitSize: "500 g"}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	recipe := models.Recipe{Name: "Brownies", BaseOverhead: mustDecimal(t, "40")}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	link := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ingredient.ID, QuantityUsed: mustDecimal(t, "0.25")}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}

	body := bytes.NewBufferString(`{"id":"` + ingredient.ID + `"}`)
	req := httptest.NewRequest(http.MethodDelete, "/ingredients", body)
	w := httptest.NewRecorder()
	IngredientResource(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var linkCount int64
	if err := db.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", ingredient.ID).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("expected links to cascade, found %d", linkCount)
	}

	err := db.First(&models.Ingredient{}, "id = ?", ingredient.ID).Error
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ingredient to be deleted, got err = %v", err)
	}
}
