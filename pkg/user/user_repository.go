package user

import (
	"Recipe-API/entities"
	"Recipe-API/pkg/crud"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	}

	userRepository struct {
		crud crud.Repository[entities.User]
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		crud: crud.NewRepository[entities.User](db, crud.Descriptor{}),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.crud.Create(ctx, user)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.crud.GetOne(ctx, map[string]any{"username": username})
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.crud.GetOne(ctx, map[string]any{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.crud.GetOne(ctx, map[string]any{"id": id})
}
