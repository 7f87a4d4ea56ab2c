package recipe

import (
	"Recipe-API/domain"
	"Recipe-API/entities"
	"Recipe-API/internal/utils/storage"
	"Recipe-API/pkg/crud"
	"Recipe-API/pkg/user"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID uint) (domain.CreateRecipeResponse, error)
		GetRecipe(ctx context.Context, recipeID uint) (domain.Recipe, error)
		SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.RecipeSearchResponse, error)
		UpdateRecipe(ctx context.Context, recipeID uint, req domain.UpdateRecipeRequest) error
		DeleteRecipe(ctx context.Context, recipeID uint) error
		UploadRecipeImage(ctx context.Context, recipeID uint, file *multipart.FileHeader) (domain.UploadImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		uploader         storage.Uploader
		log              *zap.Logger
	}
)

// NewRecipeService wires the recipe use cases. uploader may be nil, in which
// case image uploads fail with domain.ErrStorageDisabled.
func NewRecipeService(
	recipeRepository RecipeRepository,
	userRepository user.UserRepository,
	uploader storage.Uploader,
	log *zap.Logger,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		uploader:         uploader,
		log:              log,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID uint) (domain.CreateRecipeResponse, error) {
	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return domain.CreateRecipeResponse{}, domain.ErrUserNotFound
		}
		return domain.CreateRecipeResponse{}, err
	}

	ingredients, err := serializeIngredients(req.Ingredients)
	if err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  ingredients,
		Instructions: req.Instructions,
		CreatedBy:    userID,
	}
	if err := s.recipeRepository.Create(ctx, recipe); err != nil {
		return domain.CreateRecipeResponse{}, fmt.Errorf("create recipe: %w", err)
	}

	s.log.Info("recipe created", zap.Uint("recipe_id", recipe.ID), zap.Uint("user_id", userID))
	return domain.CreateRecipeResponse{Recipe: recipe.Title}, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID uint) (domain.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return toDomainRecipe(recipe), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest) (domain.RecipeSearchResponse, error) {
	page, err := s.recipeRepository.GetPaginatedSearch(ctx, req.Query, req.Page, req.PerPage)
	if err != nil {
		return domain.RecipeSearchResponse{}, fmt.Errorf("search recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(page.Items))
	for i := range page.Items {
		recipes = append(recipes, toDomainRecipe(&page.Items[i]))
	}

	return domain.RecipeSearchResponse{
		Recipes:    recipes,
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

// UpdateRecipe does not check ownership: any authenticated caller may edit
// any recipe.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID uint, req domain.UpdateRecipeRequest) error {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return domain.ErrEmptyTitle
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Instructions != nil {
		fields["instructions"] = *req.Instructions
	}
	if req.HasIngredients {
		ingredients, err := serializeIngredients(req.Ingredients)
		if err != nil {
			return err
		}
		fields["ingredients"] = ingredients
	}

	if err := s.recipeRepository.Update(ctx, recipe, fields); err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// DeleteRecipe does not check ownership either.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID uint) error {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.Delete(ctx, recipe); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return domain.ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.log.Info("recipe deleted", zap.Uint("recipe_id", recipeID))
	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID uint, file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}

	if file == nil {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return domain.UploadImageResponse{}, domain.ErrInvalidImageFormat
	}

	if s.uploader == nil {
		return domain.UploadImageResponse{}, domain.ErrStorageDisabled
	}

	key := fmt.Sprintf("recipes/%d/%s%s", recipe.ID, uuid.NewString(), ext)
	url, err := s.uploader.UploadFile(ctx, key, file)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}

	if err := s.recipeRepository.Update(ctx, recipe, map[string]any{"image_url": url}); err != nil {
		return domain.UploadImageResponse{}, fmt.Errorf("update recipe image: %w", err)
	}

	s.log.Info("recipe image uploaded", zap.Uint("recipe_id", recipe.ID), zap.String("key", key))
	return domain.UploadImageResponse{ImageURL: url}, nil
}

func (s *recipeService) findRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetOne(ctx, map[string]any{"id": recipeID})
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// serializeIngredients stores ingredients as JSON text without HTML escaping
// so that "&", "<" and ">" stay searchable as typed.
func serializeIngredients(ingredients any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ingredients); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidIngredients, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func toDomainRecipe(r *entities.Recipe) domain.Recipe {
	var ingredients json.RawMessage
	switch {
	case r.Ingredients == "":
		ingredients = json.RawMessage("null")
	case json.Valid([]byte(r.Ingredients)):
		ingredients = json.RawMessage(r.Ingredients)
	default:
		// Rows written outside the API may hold plain text.
		ingredients, _ = json.Marshal(r.Ingredients)
	}

	return domain.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
		CreatedBy:    r.CreatedBy,
	}
}
