package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

type fakeCatalogRepository struct {
	tags        []*entities.Tag
	ingredients []*entities.Ingredient
	created     []*entities.Ingredient
}

func (f *fakeCatalogRepository) GetTags(context.Context) ([]*entities.Tag, error) {
	return f.tags, nil
}

func (f *fakeCatalogRepository) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	for _, tag := range f.tags {
		if tag.ID.String() == id {
			return tag, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var out []*entities.Tag
	for _, tag := range f.tags {
		for _, id := range ids {
			if tag.ID == id {
				out = append(out, tag)
			}
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) GetIngredients(_ context.Context, search string) ([]*entities.Ingredient, error) {
	if search == "" {
		return f.ingredients, nil
	}
	var out []*entities.Ingredient
	for _, ingredient := range f.ingredients {
		if strings.HasPrefix(strings.ToLower(ingredient.Name), strings.ToLower(search)) {
			out = append(out, ingredient)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepository) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.ID.String() == id {
			return ingredient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) IngredientExists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogRepository) BulkCreateIngredients(_ context.Context, ingredients []*entities.Ingredient) error {
	f.created = append(f.created, ingredients...)
	return nil
}

func TestGetTagByID_NotFound(t *testing.T) {
	service := NewCatalogService(&fakeCatalogRepository{})

	_, err := service.GetTagByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestGetIngredients_PrefixSearch(t *testing.T) {
	repo := &fakeCatalogRepository{
		ingredients: []*entities.Ingredient{
			{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"},
			{ID: uuid.New(), Name: "salmon", MeasurementUnit: "g"},
			{ID: uuid.New(), Name: "pepper", MeasurementUnit: "g"},
		},
	}
	service := NewCatalogService(repo)

	res, err := service.GetIngredients(context.Background(), "sal")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "salt", res[0].Name)
	assert.Equal(t, "salmon", res[1].Name)
}

func TestLoadIngredientsCSV(t *testing.T) {
	repo := &fakeCatalogRepository{}
	service := NewCatalogService(repo)

	csv := "salt,g\npepper,g\nmilk,ml\n"
	loaded, err := service.LoadIngredientsCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, loaded)
	require.Len(t, repo.created, 3)
	assert.Equal(t, "salt", repo.created[0].Name)
	assert.Equal(t, "ml", repo.created[2].MeasurementUnit)
}

func TestLoadIngredientsCSV_RejectsMalformedRow(t *testing.T) {
	repo := &fakeCatalogRepository{}
	service := NewCatalogService(repo)

	_, err := service.LoadIngredientsCSV(context.Background(), strings.NewReader("salt,g\nonly-one-column\n"))
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestLoadIngredientsCSV_EmptyInput(t *testing.T) {
	repo := &fakeCatalogRepository{}
	service := NewCatalogService(repo)

	loaded, err := service.LoadIngredientsCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, loaded)
	assert.Empty(t, repo.created)
}
