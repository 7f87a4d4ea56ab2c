package handlers

import (
	"Recipe-API/domain"
	"Recipe-API/internal/api/presenters"
	"Recipe-API/internal/utils"
	"Recipe-API/pkg/crud"
	"Recipe-API/pkg/recipe"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
		log           *zap.Logger
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate, log *zap.Logger) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
		log:           log,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.CheckRequiredFields(h.validator, payload, "title", "ingredients"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	req := new(domain.CreateRecipeRequest)
	if err := bindPayload(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageUserNotFound, err)
		case errors.Is(err, domain.ErrInvalidIngredients):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
		}
		return h.internalError(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipe(c.Context(), recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, err)
		}
		return h.internalError(c, domain.MessageFailedGetRecipe, err)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := domain.SearchRecipeRequest{
		Query:   c.Query("q"),
		Page:    c.QueryInt("page", crud.DefaultPage),
		PerPage: c.QueryInt("per_page", crud.DefaultPerPage),
	}

	res, err := h.recipeService.SearchRecipes(c.Context(), req)
	if err != nil {
		return h.internalError(c, domain.MessageFailedSearchRecipes, err)
	}

	c.Set("X-Total-Count", strconv.FormatInt(res.Total, 10))
	c.Set("X-Page", strconv.Itoa(res.Page))
	c.Set("X-Per-Page", strconv.Itoa(res.PerPage))
	c.Set("X-Total-Pages", strconv.Itoa(res.TotalPages))
	return c.Status(fiber.StatusOK).JSON(res.Recipes)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, domain.ErrRecipeNotFound)
	}

	payload, err := parsePayload(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := new(domain.UpdateRecipeRequest)
	if err := bindPayload(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	_, req.HasIngredients = payload["ingredients"]

	if err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, err)
		case errors.Is(err, domain.ErrEmptyTitle), errors.Is(err, domain.ErrInvalidIngredients):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
		}
		return h.internalError(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, err)
		}
		return h.internalError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	recipeID, err := recipeIDParam(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, domain.ErrRecipeNotFound)
	}

	// A missing file reaches the service as nil so an unknown recipe is
	// still reported as 404.
	file, _ := c.FormFile("image")

	res, err := h.recipeService.UploadRecipeImage(c.Context(), recipeID, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, err)
		case errors.Is(err, domain.ErrImageRequired), errors.Is(err, domain.ErrInvalidImageFormat):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
		case errors.Is(err, domain.ErrStorageDisabled):
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageServiceUnavailable, err)
		}
		return h.internalError(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) internalError(c *fiber.Ctx, message string, err error) error {
	h.log.Error(message, zap.Error(err), zap.String("path", c.Path()))
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, nil)
}

func recipeIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrRecipeNotFound
	}
	return uint(id), nil
}
