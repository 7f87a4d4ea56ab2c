package domain

import (
	"encoding/json"
	"errors"
)

var (
	MessageSuccessCreateRecipe = "Recipe created successfully"
	MessageSuccessUpdateRecipe = "Recipe updated successfully"
	MessageSuccessDeleteRecipe = "Recipe deleted successfully"
	MessageSuccessUploadImage  = "Recipe image uploaded successfully"

	MessageRecipeNotFound      = "Recipe not found"
	MessageFailedCreateRecipe  = "failed to create recipe"
	MessageFailedGetRecipe     = "failed to get recipe"
	MessageFailedSearchRecipes = "failed to search recipes"
	MessageFailedUpdateRecipe  = "failed to update recipe"
	MessageFailedDeleteRecipe  = "failed to delete recipe"
	MessageFailedUploadImage   = "failed to upload recipe image"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrInvalidIngredients = errors.New("ingredients must be valid JSON")
	ErrImageRequired      = errors.New("image file is required")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

type (
	CreateRecipeRequest struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Ingredients  any    `json:"ingredients"`
		Instructions string `json:"instructions"`
	}

	CreateRecipeResponse struct {
		Recipe string `json:"recipe"`
	}

	// UpdateRecipeRequest carries only the fields present in the request
	// body; nil means "leave unchanged".
	UpdateRecipeRequest struct {
		Title          *string `json:"title"`
		Description    *string `json:"description"`
		Ingredients    any     `json:"ingredients"`
		Instructions   *string `json:"instructions"`
		HasIngredients bool    `json:"-"`
	}

	SearchRecipeRequest struct {
		Query   string
		Page    int
		PerPage int
	}

	Recipe struct {
		ID           uint            `json:"id"`
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		Ingredients  json.RawMessage `json:"ingredients"`
		Instructions string          `json:"instructions"`
		ImageURL     string          `json:"image_url,omitempty"`
		CreatedBy    uint            `json:"created_by"`
	}

	RecipeSearchResponse struct {
		Recipes    []Recipe
		Page       int
		PerPage    int
		Total      int64
		TotalPages int
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
