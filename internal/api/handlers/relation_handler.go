package handlers

import (
	"github.com/gofiber/fiber/v2"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/relation"
	"Foodgram-Backend/pkg/shopping"
)

type (
	RelationHandler interface {
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingList(c *fiber.Ctx) error
	}

	relationHandler struct {
		relationService relation.RelationService
		shoppingService shopping.ShoppingService
	}
)

func NewRelationHandler(relationService relation.RelationService, shoppingService shopping.ShoppingService) RelationHandler {
	return &relationHandler{
		relationService: relationService,
		shoppingService: shoppingService,
	}
}

func (h *relationHandler) AddFavorite(c *fiber.Ctx) error {
	return h.add(c, entities.RelationFavorite)
}

func (h *relationHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.remove(c, entities.RelationFavorite)
}

func (h *relationHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.add(c, entities.RelationShoppingCart)
}

func (h *relationHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.remove(c, entities.RelationShoppingCart)
}

func (h *relationHandler) add(c *fiber.Ctx, kind string) error {
	userID := c.Locals("user_id").(string)

	res, err := h.relationService.Add(c.Context(), userID, c.Params("id"), kind)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedAddRelation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddRelation)
}

func (h *relationHandler) remove(c *fiber.Ctx, kind string) error {
	userID := c.Locals("user_id").(string)

	if err := h.relationService.Remove(c.Context(), userID, c.Params("id"), kind); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedRemoveRelation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveRelation)
}

func (h *relationHandler) DownloadShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.shoppingService.AggregateShoppingList(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=shop_cart.txt")
	return c.SendString(h.shoppingService.RenderShoppingList(items))
}
