package routes

import (
	"Recipe-API/domain"
	"Recipe-API/internal/api/handlers"
	"Recipe-API/internal/middleware"
	"Recipe-API/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessagePong})
	})
}

func (c *Config) Auth() {
	c.App.Post("/register", c.UserHandler.Register)
	c.App.Post("/login", c.UserHandler.Login)
	c.App.Post("/refresh", c.Middleware.AuthMiddleware(c.JWTService, jwt.TokenRefresh), c.UserHandler.RefreshToken)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/recipes", c.Middleware.AuthMiddleware(c.JWTService, jwt.TokenAccess))

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	// registered before /:id so "search" is never taken for an id
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/:id<int>", c.RecipeHandler.GetRecipe)
	recipes.Put("/:id<int>", c.RecipeHandler.UpdateRecipe)
	recipes.Patch("/:id<int>", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id<int>", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id<int>/image", c.RecipeHandler.UploadRecipeImage)
}
