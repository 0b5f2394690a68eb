package recipe

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

// validateComposition checks a candidate tag list and ingredient-amount
// list before any mutation is attempted. Rules run in a fixed order and
// the first failing rule aborts the whole operation:
//
//  1. tag list non-empty
//  2. no duplicate tag ids
//  3. ingredient list non-empty
//  4. every ingredient id references an existing ingredient
//  5. no duplicate ingredient ids
//  6. every amount is at least 1
//
// It is a pure read against the store and returns the parsed tag ids
// and ingredient rows ready for the composer.
func (s *recipeService) validateComposition(ctx context.Context, tagIDs []string, ingredients []domain.IngredientAmountRequest) ([]uuid.UUID, []*entities.RecipeIngredient, error) {
	if len(tagIDs) == 0 {
		return nil, nil, domain.ErrNoTags
	}

	parsedTags := make([]uuid.UUID, 0, len(tagIDs))
	seenTags := make(map[uuid.UUID]bool, len(tagIDs))
	for _, raw := range tagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		if seenTags[id] {
			return nil, nil, domain.ErrDuplicateTags
		}
		seenTags[id] = true
		parsedTags = append(parsedTags, id)
	}

	if len(ingredients) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	for _, ingredient := range ingredients {
		id, err := uuid.Parse(ingredient.ID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		exists, err := s.catalogRepository.IngredientExists(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, fmt.Errorf("%w: id %s", domain.ErrUnknownIngredient, ingredient.ID)
		}
	}

	items := make([]*entities.RecipeIngredient, 0, len(ingredients))
	seenIngredients := make(map[uuid.UUID]bool, len(ingredients))
	for _, ingredient := range ingredients {
		id, _ := uuid.Parse(ingredient.ID)
		if seenIngredients[id] {
			return nil, nil, domain.ErrDuplicateIngredients
		}
		seenIngredients[id] = true
		items = append(items, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: id,
			Amount:       ingredient.Amount,
		})
	}

	for _, item := range items {
		if item.Amount < 1 {
			return nil, nil, domain.ErrInvalidAmount
		}
	}

	return parsedTags, items, nil
}
