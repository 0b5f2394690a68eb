package domain

import (
	"errors"
)

var (
	MessageSuccessShoppingList = "shopping list generated"
	MessageFailedShoppingList  = "failed to generate shopping list"

	ErrEmptyCart = errors.New("shopping cart is empty")
)

type (
	// ShoppingListItem is one aggregated line: amounts are summed only
	// when both the ingredient name and its unit match.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}
)
