package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"uniqueIndex" json:"name"`
	Color string    `json:"color"` // hex, e.g. #49B64E
	Slug  string    `gorm:"uniqueIndex" json:"slug"`

	Recipes []*Recipe `gorm:"many2many:recipe_tags" json:"-"`
}
