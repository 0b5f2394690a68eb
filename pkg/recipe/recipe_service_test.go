package recipe

import (
	"context"
	"encoding/base64"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

type fakeRecipeRepository struct {
	recipes   map[uuid.UUID]*entities.Recipe
	items     map[uuid.UUID][]*entities.RecipeIngredient
	tags      map[uuid.UUID][]uuid.UUID
	relations []entities.RecipeRelation

	createErr error
	updateErr error
	creates   int
	updates   int
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes: map[uuid.UUID]*entities.Recipe{},
		items:   map[uuid.UUID][]*entities.RecipeIngredient{},
		tags:    map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	stored := *recipe
	f.recipes[recipe.ID] = &stored
	f.items[recipe.ID] = items
	f.tags[recipe.ID] = tagIDs
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, items []*entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	stored := *recipe
	f.recipes[recipe.ID] = &stored
	f.items[recipe.ID] = items
	f.tags[recipe.ID] = tagIDs
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	delete(f.recipes, id)
	delete(f.items, id)
	delete(f.tags, id)
	kept := f.relations[:0]
	for _, rel := range f.relations {
		if rel.RecipeID != id {
			kept = append(kept, rel)
		}
	}
	f.relations = kept
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	recipe, ok := f.recipes[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *recipe
	copied.Ingredients = f.items[parsed]
	return &copied, nil
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, _ domain.RecipeFilter, _, _ int) ([]*entities.Recipe, int64, error) {
	out := make([]*entities.Recipe, 0, len(f.recipes))
	for _, recipe := range f.recipes {
		out = append(out, recipe)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepository) ListViewerRelationIDs(_ context.Context, viewerID string, kind string, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	var ids []uuid.UUID
	for _, rel := range f.relations {
		if rel.OwnerID.String() == viewerID && rel.Kind == kind && wanted[rel.RecipeID] {
			ids = append(ids, rel.RecipeID)
		}
	}
	return ids, nil
}

type fakeCatalogRepository struct {
	ingredients map[uuid.UUID]bool
}

func (f *fakeCatalogRepository) GetTags(context.Context) ([]*entities.Tag, error) { return nil, nil }
func (f *fakeCatalogRepository) GetTagByID(context.Context, string) (*entities.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalogRepository) GetTagsByIDs(context.Context, []uuid.UUID) ([]*entities.Tag, error) {
	return nil, nil
}
func (f *fakeCatalogRepository) GetIngredients(context.Context, string) ([]*entities.Ingredient, error) {
	return nil, nil
}
func (f *fakeCatalogRepository) GetIngredientByID(context.Context, string) (*entities.Ingredient, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCatalogRepository) IngredientExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.ingredients[id], nil
}
func (f *fakeCatalogRepository) BulkCreateIngredients(context.Context, []*entities.Ingredient) error {
	return nil
}

type fakeStorage struct {
	uploads int
	deleted []string
}

func (f *fakeStorage) UploadFile(key string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + key, nil
}

func (f *fakeStorage) UploadBytes(key string, _ []byte, ext string, folder string) (string, error) {
	f.uploads++
	return folder + "/" + key + ext, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeStorage) ObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://cdn.test/")
}

func newTestService() (*recipeService, *fakeRecipeRepository, *fakeCatalogRepository, *fakeStorage) {
	recipeRepo := newFakeRecipeRepository()
	catalogRepo := &fakeCatalogRepository{ingredients: map[uuid.UUID]bool{}}
	s3 := &fakeStorage{}
	service := &recipeService{
		recipeRepository:  recipeRepo,
		catalogRepository: catalogRepo,
		s3:                s3,
	}
	return service, recipeRepo, catalogRepo, s3
}

func validRequest(ingredientID uuid.UUID) domain.ComposeRecipeRequest {
	return domain.ComposeRecipeRequest{
		Name:        "Borscht",
		Text:        "Classic beet soup",
		CookingTime: 60,
		Tags:        []string{uuid.NewString()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: ingredientID.String(), Amount: 3},
		},
	}
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a real png"))
}

func TestValidateComposition_RuleOrder(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()

	tests := []struct {
		name        string
		tags        []string
		ingredients []domain.IngredientAmountRequest
		wantErr     error
	}{
		{
			name:        "empty tag list",
			tags:        nil,
			ingredients: []domain.IngredientAmountRequest{{ID: known.String(), Amount: 1}},
			wantErr:     domain.ErrNoTags,
		},
		{
			name:        "duplicate tags",
			tags:        []string{known.String(), known.String()},
			ingredients: []domain.IngredientAmountRequest{{ID: known.String(), Amount: 1}},
			wantErr:     domain.ErrDuplicateTags,
		},
		{
			name:        "empty ingredient list",
			tags:        []string{uuid.NewString()},
			ingredients: nil,
			wantErr:     domain.ErrNoIngredients,
		},
		{
			name:        "unknown ingredient",
			tags:        []string{uuid.NewString()},
			ingredients: []domain.IngredientAmountRequest{{ID: unknown.String(), Amount: 1}},
			wantErr:     domain.ErrUnknownIngredient,
		},
		{
			name: "duplicate ingredients",
			tags: []string{uuid.NewString()},
			ingredients: []domain.IngredientAmountRequest{
				{ID: known.String(), Amount: 1},
				{ID: known.String(), Amount: 2},
			},
			wantErr: domain.ErrDuplicateIngredients,
		},
		{
			name:        "amount below one",
			tags:        []string{uuid.NewString()},
			ingredients: []domain.IngredientAmountRequest{{ID: known.String(), Amount: 0}},
			wantErr:     domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, catalogRepo, _ := newTestService()
			catalogRepo.ingredients[known] = true

			_, _, err := service.validateComposition(context.Background(), tt.tags, tt.ingredients)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateComposition_EmptyTagsWinsOverBadIngredients(t *testing.T) {
	service, _, _, _ := newTestService()

	// Both rule 1 and rule 3 are violated; rule 1 must report first.
	_, _, err := service.validateComposition(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoTags)
}

func TestValidateComposition_UnknownIngredientNamesID(t *testing.T) {
	service, _, _, _ := newTestService()
	unknown := uuid.New()

	_, _, err := service.validateComposition(
		context.Background(),
		[]string{uuid.NewString()},
		[]domain.IngredientAmountRequest{{ID: unknown.String(), Amount: 1}},
	)
	require.ErrorIs(t, err, domain.ErrUnknownIngredient)
	assert.Contains(t, err.Error(), unknown.String())
}

func TestCreateRecipe(t *testing.T) {
	service, recipeRepo, catalogRepo, s3 := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true
	authorID := uuid.NewString()

	req := validRequest(ingredientID)
	req.Image = pngDataURI(t)

	res, err := service.CreateRecipe(context.Background(), req, authorID)
	require.NoError(t, err)

	assert.Equal(t, "Borscht", res.Name)
	assert.Equal(t, 60, res.CookingTime)
	assert.False(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)
	assert.True(t, strings.HasPrefix(res.ImageURL, "https://cdn.test/recipes/recipe-"))

	assert.Equal(t, 1, recipeRepo.creates)
	assert.Equal(t, 1, s3.uploads)
	assert.Empty(t, s3.deleted)
}

func TestCreateRecipe_ValidationFailureTouchesNothing(t *testing.T) {
	service, recipeRepo, _, s3 := newTestService()

	req := validRequest(uuid.New()) // ingredient unknown to the catalog
	req.Image = pngDataURI(t)

	_, err := service.CreateRecipe(context.Background(), req, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUnknownIngredient)

	assert.Zero(t, recipeRepo.creates)
	assert.Zero(t, s3.uploads)
}

func TestCreateRecipe_DuplicateNameReleasesImage(t *testing.T) {
	service, recipeRepo, catalogRepo, s3 := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true
	recipeRepo.createErr = gorm.ErrDuplicatedKey

	req := validRequest(ingredientID)
	req.Image = pngDataURI(t)

	_, err := service.CreateRecipe(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNameTaken)

	// The orphaned upload must be removed when the insert loses.
	require.Len(t, s3.deleted, 1)
	assert.True(t, strings.HasPrefix(s3.deleted[0], "recipes/recipe-"))
}

func TestCreateRecipe_RejectsBadImagePayload(t *testing.T) {
	service, _, catalogRepo, _ := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true

	req := validRequest(ingredientID)
	req.Image = "definitely not a data uri"

	_, err := service.CreateRecipe(context.Background(), req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func seedRecipe(repo *fakeRecipeRepository, authorID uuid.UUID, imageURL string) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:                 uuid.New(),
		AuthorID:           authorID,
		Name:               "Old name",
		Text:               "Old text",
		ImageURL:           imageURL,
		CookingTimeMinutes: 15,
		PubDate:            time.Now(),
	}
	repo.recipes[recipe.ID] = recipe
	return recipe
}

func TestUpdateRecipe_Forbidden(t *testing.T) {
	service, recipeRepo, catalogRepo, _ := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true
	recipe := seedRecipe(recipeRepo, uuid.New(), "")

	_, err := service.UpdateRecipe(
		context.Background(),
		recipe.ID.String(),
		validRequest(ingredientID),
		uuid.NewString(),
		domain.RoleUser,
	)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
	assert.Zero(t, recipeRepo.updates)
}

func TestUpdateRecipe_AdminMayEditAnyRecipe(t *testing.T) {
	service, recipeRepo, catalogRepo, _ := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true
	recipe := seedRecipe(recipeRepo, uuid.New(), "")

	res, err := service.UpdateRecipe(
		context.Background(),
		recipe.ID.String(),
		validRequest(ingredientID),
		uuid.NewString(),
		domain.RoleAdmin,
	)
	require.NoError(t, err)
	assert.Equal(t, "Borscht", res.Name)
	assert.Equal(t, 1, recipeRepo.updates)
}

func TestUpdateRecipe_ReplacesCompositionAndReleasesOldImage(t *testing.T) {
	service, recipeRepo, catalogRepo, s3 := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true

	authorID := uuid.New()
	recipe := seedRecipe(recipeRepo, authorID, "https://cdn.test/recipes/old-image.png")
	recipeRepo.items[recipe.ID] = []*entities.RecipeIngredient{
		{ID: uuid.New(), RecipeID: recipe.ID, IngredientID: uuid.New(), Amount: 9},
	}

	req := validRequest(ingredientID)
	req.Image = pngDataURI(t)

	res, err := service.UpdateRecipe(context.Background(), recipe.ID.String(), req, authorID.String(), domain.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, "Borscht", res.Name)
	require.Len(t, recipeRepo.items[recipe.ID], 1)
	assert.Equal(t, ingredientID, recipeRepo.items[recipe.ID][0].IngredientID)
	assert.Equal(t, 3, recipeRepo.items[recipe.ID][0].Amount)

	// The superseded image is released only after the commit.
	assert.Equal(t, []string{"recipes/old-image.png"}, s3.deleted)
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	service, _, catalogRepo, _ := newTestService()
	ingredientID := uuid.New()
	catalogRepo.ingredients[ingredientID] = true

	_, err := service.UpdateRecipe(
		context.Background(),
		uuid.NewString(),
		validRequest(ingredientID),
		uuid.NewString(),
		domain.RoleUser,
	)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	service, recipeRepo, _, s3 := newTestService()
	authorID := uuid.New()
	recipe := seedRecipe(recipeRepo, authorID, "https://cdn.test/recipes/gone.png")
	recipeRepo.relations = append(recipeRepo.relations, entities.RecipeRelation{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		RecipeID: recipe.ID,
		Kind:     entities.RelationFavorite,
	})

	err := service.DeleteRecipe(context.Background(), recipe.ID.String(), authorID.String(), domain.RoleUser)
	require.NoError(t, err)

	assert.Empty(t, recipeRepo.recipes)
	assert.Empty(t, recipeRepo.relations)
	assert.Equal(t, []string{"recipes/gone.png"}, s3.deleted)
}

func TestDeleteRecipe_Forbidden(t *testing.T) {
	service, recipeRepo, _, _ := newTestService()
	recipe := seedRecipe(recipeRepo, uuid.New(), "")

	err := service.DeleteRecipe(context.Background(), recipe.ID.String(), uuid.NewString(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
	assert.Len(t, recipeRepo.recipes, 1)
}

func TestGetRecipes_ViewerFlags(t *testing.T) {
	service, recipeRepo, _, _ := newTestService()
	viewerID := uuid.New()

	favorited := seedRecipe(recipeRepo, uuid.New(), "")
	plain := &entities.Recipe{ID: uuid.New(), AuthorID: uuid.New(), Name: "Plain", PubDate: time.Now()}
	recipeRepo.recipes[plain.ID] = plain
	recipeRepo.relations = append(recipeRepo.relations, entities.RecipeRelation{
		ID:       uuid.New(),
		OwnerID:  viewerID,
		RecipeID: favorited.ID,
		Kind:     entities.RelationFavorite,
	})

	res, err := service.GetRecipes(context.Background(), domain.RecipeFilter{ViewerID: viewerID.String()}, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Recipes, 2)

	flags := map[string]bool{}
	for _, recipe := range res.Recipes {
		flags[recipe.ID] = recipe.IsFavorited
		assert.False(t, recipe.IsInShoppingCart)
	}
	assert.True(t, flags[favorited.ID.String()])
	assert.False(t, flags[plain.ID.String()])
}

func TestGetRecipes_AnonymousViewerGetsNoFlags(t *testing.T) {
	service, recipeRepo, _, _ := newTestService()
	recipe := seedRecipe(recipeRepo, uuid.New(), "")
	recipeRepo.relations = append(recipeRepo.relations, entities.RecipeRelation{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		RecipeID: recipe.ID,
		Kind:     entities.RelationShoppingCart,
	})

	res, err := service.GetRecipes(context.Background(), domain.RecipeFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.False(t, res.Recipes[0].IsFavorited)
	assert.False(t, res.Recipes[0].IsInShoppingCart)
}

func TestDecodeBase64Image(t *testing.T) {
	raw, ext, err := decodeBase64Image("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes")))
	require.NoError(t, err)
	assert.Equal(t, ".jpeg", ext)
	assert.Equal(t, []byte("jpeg bytes"), raw)

	_, _, err = decodeBase64Image("data:image/png;base64,%%%not-base64%%%")
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}
