package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.ComposeRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.ComposeRecipeRequest, requesterID string, requesterRole string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, requesterID string, requesterRole string) error
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.ComposeRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	tagIDs, items, err := s.validateComposition(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipeID := uuid.New()

	var imageURL string
	if req.Image != "" {
		imageURL, err = s.uploadImage(recipeID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	recipe := &entities.Recipe{
		ID:                 recipeID,
		AuthorID:           authorUUID,
		Name:               req.Name,
		Text:               req.Text,
		ImageURL:           imageURL,
		CookingTimeMinutes: req.CookingTime,
		PubDate:            time.Now(),
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, items, tagIDs); err != nil {
		if imageURL != "" {
			// Nothing references the uploaded image anymore, release it.
			_ = s.s3.DeleteFile(s.s3.ObjectKeyFromLink(imageURL))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.ComposeRecipeRequest, requesterID string, requesterRole string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != requesterID && requesterRole != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	// Structural updates replace the whole association set, so tags and
	// ingredients are required here just like on create.
	tagIDs, items, err := s.validateComposition(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	oldImageURL := recipe.ImageURL
	if req.Image != "" {
		newImageURL, err := s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = newImageURL
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTimeMinutes = req.CookingTime
	recipe.Tags = nil
	recipe.Ingredients = nil
	recipe.Author = nil

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, items, tagIDs); err != nil {
		if recipe.ImageURL != oldImageURL && recipe.ImageURL != "" {
			_ = s.s3.DeleteFile(s.s3.ObjectKeyFromLink(recipe.ImageURL))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
		}
		return domain.RecipeResponse{}, err
	}

	// Old image got superseded by the replacement, release it.
	if oldImageURL != "" && oldImageURL != recipe.ImageURL {
		_ = s.s3.DeleteFile(s.s3.ObjectKeyFromLink(oldImageURL))
	}

	return s.GetRecipeDetail(ctx, recipeID, requesterID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, requesterID string, requesterRole string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != requesterID && requesterRole != domain.RoleAdmin {
		return domain.ErrNotRecipeAuthor
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}

	if recipe.ImageURL != "" {
		_ = s.s3.DeleteFile(s.s3.ObjectKeyFromLink(recipe.ImageURL))
	}
	return nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	favorited, inCart := false, false
	if viewerID != "" {
		favIDs, err := s.recipeRepository.ListViewerRelationIDs(ctx, viewerID, entities.RelationFavorite, []uuid.UUID{recipe.ID})
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		cartIDs, err := s.recipeRepository.ListViewerRelationIDs(ctx, viewerID, entities.RelationShoppingCart, []uuid.UUID{recipe.ID})
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		favorited = len(favIDs) > 0
		inCart = len(cartIDs) > 0
	}

	return recipeResponse(recipe, favorited, inCart), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	// Per-viewer flags come from one batched existence check per
	// relation kind; anonymous viewers get them omitted (false).
	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	if filter.ViewerID != "" && len(recipes) > 0 {
		ids := make([]uuid.UUID, 0, len(recipes))
		for _, recipe := range recipes {
			ids = append(ids, recipe.ID)
		}

		favIDs, err := s.recipeRepository.ListViewerRelationIDs(ctx, filter.ViewerID, entities.RelationFavorite, ids)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		for _, id := range favIDs {
			favorited[id] = true
		}

		cartIDs, err := s.recipeRepository.ListViewerRelationIDs(ctx, filter.ViewerID, entities.RelationShoppingCart, ids)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		for _, id := range cartIDs {
			inCart[id] = true
		}
	}

	res := domain.RecipeListResponse{
		Recipes: make([]domain.RecipeResponse, 0, len(recipes)),
		Total:   count,
	}
	for _, recipe := range recipes {
		res.Recipes = append(res.Recipes, recipeResponse(recipe, favorited[recipe.ID], inCart[recipe.ID]))
	}
	return res, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, data string) (string, error) {
	raw, ext, err := decodeBase64Image(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipe-%s-%d", recipeID.String(), time.Now().UnixNano())
	objectKey, err := s.s3.UploadBytes(key, raw, ext, "recipes")
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

// decodeBase64Image accepts a "data:image/<fmt>;base64,<payload>" URI
// and returns the raw bytes plus the file extension.
func decodeBase64Image(data string) ([]byte, string, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return nil, "", domain.ErrInvalidImage
	}

	parts := strings.SplitN(data, ";base64,", 2)
	if len(parts) != 2 {
		return nil, "", domain.ErrInvalidImage
	}

	ext := "." + strings.TrimPrefix(parts[0], "data:image/")
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", domain.ErrInvalidImage
	}
	return raw, ext, nil
}

func recipeResponse(recipe *entities.Recipe, favorited, inCart bool) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Name:             recipe.Name,
		ImageURL:         recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTimeMinutes,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		PubDate:          recipe.PubDate,
		Tags:             make([]domain.TagResponse, 0, len(recipe.Tags)),
		Ingredients:      make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
	}

	if recipe.Author != nil {
		res.Author = domain.UserResponse{
			ID:        recipe.Author.ID.String(),
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	for _, tag := range recipe.Tags {
		res.Tags = append(res.Tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	for _, item := range recipe.Ingredients {
		ingredient := domain.RecipeIngredientResponse{
			ID:     item.IngredientID.String(),
			Amount: item.Amount,
		}
		if item.Ingredient != nil {
			ingredient.Name = item.Ingredient.Name
			ingredient.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, ingredient)
	}

	return res
}
