package relation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

// Display labels per relation kind, used in failure messages. Favorite
// and shopping cart share everything else.
var kindLabels = map[string]string{
	entities.RelationFavorite:     "favorites",
	entities.RelationShoppingCart: "shopping cart",
}

type (
	RelationService interface {
		Add(ctx context.Context, ownerID, recipeID, kind string) (domain.RecipeSummaryResponse, error)
		Remove(ctx context.Context, ownerID, recipeID, kind string) error
	}

	relationService struct {
		relationRepository RelationRepository
	}
)

func NewRelationService(relationRepository RelationRepository) RelationService {
	return &relationService{relationRepository: relationRepository}
}

func (s *relationService) Add(ctx context.Context, ownerID, recipeID, kind string) (domain.RecipeSummaryResponse, error) {
	recipe, ownerUUID, err := s.resolve(ctx, ownerID, recipeID)
	if err != nil {
		return domain.RecipeSummaryResponse{}, err
	}

	exists, err := s.relationRepository.RelationExists(ctx, ownerUUID, recipe.ID, kind)
	if err != nil {
		return domain.RecipeSummaryResponse{}, err
	}
	if exists {
		return domain.RecipeSummaryResponse{}, fmt.Errorf("%w: %s", domain.ErrAlreadyInList, kindLabels[kind])
	}

	rel := &entities.RecipeRelation{
		ID:       uuid.New(),
		OwnerID:  ownerUUID,
		RecipeID: recipe.ID,
		Kind:     kind,
	}
	if err := s.relationRepository.CreateRelation(ctx, rel); err != nil {
		// A concurrent add may win the race; the unique index makes
		// exactly one succeed and the loser sees the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummaryResponse{}, fmt.Errorf("%w: %s", domain.ErrAlreadyInList, kindLabels[kind])
		}
		return domain.RecipeSummaryResponse{}, err
	}

	return domain.RecipeSummaryResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTimeMinutes,
	}, nil
}

func (s *relationService) Remove(ctx context.Context, ownerID, recipeID, kind string) error {
	recipe, ownerUUID, err := s.resolve(ctx, ownerID, recipeID)
	if err != nil {
		return err
	}

	deleted, err := s.relationRepository.DeleteRelation(ctx, ownerUUID, recipe.ID, kind)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotInList, kindLabels[kind])
	}
	return nil
}

func (s *relationService) resolve(ctx context.Context, ownerID, recipeID string) (*entities.Recipe, uuid.UUID, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	recipe, err := s.relationRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return nil, uuid.Nil, err
	}
	return recipe, ownerUUID, nil
}
