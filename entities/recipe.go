package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	RelationFavorite     = "favorite"
	RelationShoppingCart = "shopping_cart"
)

type Recipe struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID           uuid.UUID `json:"author_id"`
	Name               string    `gorm:"uniqueIndex" json:"name"`
	Text               string    `gorm:"type:text" json:"text"`
	ImageURL           string    `json:"image_url,omitempty"`
	CookingTimeMinutes int       `json:"cooking_time_minutes"`
	PubDate            time.Time `gorm:"type:timestamp" json:"pub_date"`

	Author      *User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []*Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int       `json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// RecipeRelation is a presence-only row: favorite and shopping cart
// membership differ only by Kind.
type RecipeRelation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID  uuid.UUID `gorm:"uniqueIndex:idx_owner_recipe_kind" json:"owner_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_owner_recipe_kind" json:"recipe_id"`
	Kind     string    `gorm:"uniqueIndex:idx_owner_recipe_kind" json:"kind"`

	Owner  *User   `gorm:"foreignKey:OwnerID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}
