package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeAuthor = errors.New("only the author can modify this recipe")
	ErrRecipeNameTaken = errors.New("recipe with this name already exists")

	// Composition validation, checked in this exact order.
	ErrNoTags               = errors.New("tag list must not be empty")
	ErrDuplicateTags        = errors.New("duplicate tags in list")
	ErrNoIngredients        = errors.New("ingredient list must not be empty")
	ErrUnknownIngredient    = errors.New("unknown ingredient")
	ErrDuplicateIngredients = errors.New("duplicate ingredients in list")
	ErrInvalidAmount        = errors.New("ingredient amount must be at least 1")

	ErrInvalidImage = errors.New("invalid image data")
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	ComposeRecipeRequest struct {
		Name        string                    `json:"name" validate:"required"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image,omitempty"` // base64 data URI
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"dive"`
	}

	RecipeFilter struct {
		AuthorID      string
		TagSlugs      []string
		OnlyFavorited bool
		OnlyInCart    bool
		ViewerID      string
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Name             string                     `json:"name"`
		Author           UserResponse               `json:"author"`
		Tags             []TagResponse              `json:"tags"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		ImageURL         string                     `json:"image_url,omitempty"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		PubDate          time.Time                  `json:"pub_date"`
	}

	// RecipeSummaryResponse is the light projection returned by the
	// relation toggler and embedded in subscription listings.
	RecipeSummaryResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes []RecipeResponse `json:"recipes"`
		Total   int64            `json:"total"`
	}
)
