package recipe

import (
	"Recipe-API/entities"
	"Recipe-API/pkg/crud"

	"gorm.io/gorm"
)

var recipeDescriptor = crud.Descriptor{
	SearchFields: []string{"title", "ingredients"},
	OrderBy:      "id asc",
}

type RecipeRepository interface {
	crud.Repository[entities.Recipe]
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return crud.NewRepository[entities.Recipe](db, recipeDescriptor)
}
