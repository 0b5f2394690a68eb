package relation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Foodgram-Backend/entities"
)

type (
	RelationRepository interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		RelationExists(ctx context.Context, ownerID, recipeID uuid.UUID, kind string) (bool, error)
		CreateRelation(ctx context.Context, rel *entities.RecipeRelation) error
		DeleteRelation(ctx context.Context, ownerID, recipeID uuid.UUID, kind string) (int64, error)
	}

	relationRepository struct {
		db *gorm.DB
	}
)

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *relationRepository) RelationExists(ctx context.Context, ownerID, recipeID uuid.UUID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRelation{}).
		Where("owner_id = ? AND recipe_id = ? AND kind = ?", ownerID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) CreateRelation(ctx context.Context, rel *entities.RecipeRelation) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *relationRepository) DeleteRelation(ctx context.Context, ownerID, recipeID uuid.UUID, kind string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND recipe_id = ? AND kind = ?", ownerID, recipeID, kind).
		Delete(&entities.RecipeRelation{})
	return res.RowsAffected, res.Error
}
