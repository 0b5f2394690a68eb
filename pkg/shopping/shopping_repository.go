package shopping

import (
	"context"

	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

type (
	ShoppingRepository interface {
		CountCartRecipes(ctx context.Context, ownerID string) (int64, error)
		ListCartIngredients(ctx context.Context, ownerID string) ([]domain.ShoppingListItem, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CountCartRecipes(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRelation{}).
		Where("owner_id = ? AND kind = ?", ownerID, entities.RelationShoppingCart).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListCartIngredients returns one row per (recipe, ingredient) pair
// across every recipe in the owner's cart; summing is done in the
// service.
func (r *shoppingRepository) ListCartIngredients(ctx context.Context, ownerID string) ([]domain.ShoppingListItem, error) {
	var rows []domain.ShoppingListItem

	query := `
		SELECT ingredients.name AS name,
		       ingredients.measurement_unit AS measurement_unit,
		       recipe_ingredients.amount AS amount
		FROM recipe_relations
		JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipe_relations.recipe_id
		JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id
		WHERE recipe_relations.owner_id = ? AND recipe_relations.kind = ?
	`

	if err := r.db.WithContext(ctx).
		Raw(query, ownerID, entities.RelationShoppingCart).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
