package shopping

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"Foodgram-Backend/domain"
)

const shoppingListHeader = "Shopping list:"

type (
	ShoppingService interface {
		AggregateShoppingList(ctx context.Context, ownerID string) ([]domain.ShoppingListItem, error)
		RenderShoppingList(items []domain.ShoppingListItem) string
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository) ShoppingService {
	return &shoppingService{shoppingRepository: shoppingRepository}
}

// AggregateShoppingList folds every ingredient-amount pair across the
// owner's cart recipes, summing amounts per (name, unit) group. It is
// a pure read and safe to call concurrently.
func (s *shoppingService) AggregateShoppingList(ctx context.Context, ownerID string) ([]domain.ShoppingListItem, error) {
	count, err := s.shoppingRepository.CountCartRecipes(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrEmptyCart
	}

	rows, err := s.shoppingRepository.ListCartIngredients(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		name string
		unit string
	}
	totals := make(map[groupKey]int, len(rows))
	for _, row := range rows {
		totals[groupKey{row.Name, row.MeasurementUnit}] += row.Amount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for key, amount := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Amount:          amount,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items, nil
}

// RenderShoppingList produces the plain-text attachment body: a header
// line, then one line per aggregated ingredient.
func (s *shoppingService) RenderShoppingList(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(shoppingListHeader + "\n")
	for _, item := range items {
		fmt.Fprintf(&b, "* %s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
